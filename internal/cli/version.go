package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
)

// versionInfo is the --json document. Commit and Built are set by -ldflags.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// newVersionCommand prints build metadata.
func newVersionCommand() *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   config.CmdUseVersion,
		Short: config.CmdShortVersion,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			if short {
				fmt.Fprintln(w, config.Version)
				return nil
			}

			info := versionInfo{
				Version:   config.Version,
				Commit:    config.Commit,
				Built:     config.Date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			fmt.Fprintf(w, config.MsgVersionOutput, config.BinaryName, info.Version)
			fmt.Fprintf(w, config.MsgVersionField, "commit:", info.Commit)
			fmt.Fprintf(w, config.MsgVersionField, "built:", info.Built)
			fmt.Fprintf(w, config.MsgVersionField, "go version:", info.GoVersion)
			fmt.Fprintf(w, config.MsgVersionField, "platform:", info.Platform)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, config.FlagShort, false, config.FlagDescShort)
	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}
