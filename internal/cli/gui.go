package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
)

// newGUICommand opens the desktop wizard injected by main.
func (a *App) newGUICommand() *cobra.Command {
	return &cobra.Command{
		Use:         config.CmdUseGUI,
		Short:       config.CmdShortGUI,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{config.AnnotationDaemon: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Headless builds and tests run without a Fyne driver.
			if a.opts.GUI == nil {
				return errors.New(config.ErrGUIMissing)
			}
			return a.opts.GUI(cmd.Context(), a)
		},
	}
}
