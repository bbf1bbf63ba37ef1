package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wordwell/wordwell/internal/model"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the word database",
		Long:  "Apply schema migrations and load word data from files.",
	}

	cmd.AddCommand(newDBMigrateCmd())
	cmd.AddCommand(newDBImportCmd())
	cmd.AddCommand(newDBStatsCmd())

	return cmd
}

// ---------- db migrate ----------

func newDBMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		Long:  "Create any missing tables and indexes. Opening the database migrates it, so this is mostly useful for provisioning.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

// ---------- db import ----------

func newDBImportCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import words from a JSON file",
		Long: `Import words from a JSON array of objects with word, definition,
pronunciation, and wordType fields. Entries are validated and lowercased
the same way the admin API validates them; any invalid entry aborts the
import before anything is written.`,
		Example: `  wordwell db import words.json
  wordwell db import --lang en words.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBImport(lang, args[0])
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "en", "Language code to import into")

	return cmd
}

func runDBImport(lang, path string) error {
	table, err := model.LanguageTable(lang)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var entries []model.UpsertWord
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		entries[i].Normalize()
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	for i := range entries {
		if _, err := s.CreateWord(ctx, table, &entries[i]); err != nil {
			return fmt.Errorf("insert entry %d (%q): %w", i, entries[i].Word, err)
		}
	}

	fmt.Printf("Imported %d words into %q.\n", len(entries), lang)
	return nil
}

// ---------- db stats ----------

func newDBStatsCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show word counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := model.LanguageTable(lang)
			if err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.CountWords(context.Background(), table)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d words\n", lang, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "en", "Language code")

	return cmd
}
