package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wordwell/wordwell/internal/service"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		Long:  "Create, list, and delete the user accounts that can log in to the admin API.",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserDeleteCmd())

	return cmd
}

// ---------- user create ----------

func newUserCreateCmd() *cobra.Command {
	var (
		username string
		password string
		isAdmin  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Example: `  wordwell user create --username alice --admin
  wordwell user create --username bob --password secret  # non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(username, password, isAdmin)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Grant admin rights")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runUserCreate(username, password string, isAdmin bool) error {
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user, err := s.CreateUser(context.Background(), username, hash, isAdmin)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Printf("Created %s %q (id %d)\n", role, user.Username, user.ID)
	return nil
}

// ---------- user list ----------

func newUserListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserList(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runUserList(cmd *cobra.Command, jsonOutput bool) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	users, err := s.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(users)
	}

	if len(users) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
		return nil
	}
	for _, u := range users {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-6s created %s\n",
			u.Username, role, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// ---------- user delete ----------

func newUserDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <username>",
		Aliases: []string{"rm"},
		Short:   "Delete a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteUser(context.Background(), args[0]); err != nil {
				return fmt.Errorf("delete user: %w", err)
			}
			fmt.Printf("Deleted user %q\n", args[0])
			return nil
		},
	}
	return cmd
}
