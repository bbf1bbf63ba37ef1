package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Built    string `json:"built"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the wordwell build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildInfo{
				Version:  version,
				Commit:   commit,
				Built:    date,
				Go:       runtime.Version(),
				Platform: runtime.GOOS + "/" + runtime.GOARCH,
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wordwell %s (commit %s, built %s, %s, %s)\n",
				info.Version, info.Commit, info.Built, info.Go, info.Platform)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build details as indented JSON")

	return cmd
}
