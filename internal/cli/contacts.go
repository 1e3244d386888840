package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
)

// newContactsCommand charts every contact of the configured source against
// today. It is a one-shot read; the server keeps its own copy.
func (a *App) newContactsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseContacts,
		Short: config.CmdShortContacts,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			charts, err := a.Generator().LoadCharts(cmd.Context(), a.sourceConfig())
			if err != nil {
				return err
			}
			return a.renderer(cmd).Contacts(charts)
		},
	}
}
