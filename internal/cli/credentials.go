package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
)

// newCredentialsCommand manages the CardDAV password in the OS keyring. The
// account comes from --user or source.web_user.
func (a *App) newCredentialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdUseCredentials,
		Short: config.CmdShortCredentials,
	}

	set := &cobra.Command{
		Use:   config.CmdUseCredSet,
		Short: config.CmdShortCredSet,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := a.Settings.Source.WebUser
			if user == "" {
				return errors.New(config.ErrUserRequired)
			}

			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := a.Credentials.Set(user, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgPasswordSaved, user)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   config.CmdUseCredDelete,
		Short: config.CmdShortCredDelete,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := a.Settings.Source.WebUser
			if err := a.Credentials.Delete(user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgPasswordGone, user)
			return nil
		},
	}

	// Bound to source.web_user by initConfig.
	for _, c := range []*cobra.Command{set, del} {
		c.Flags().String(config.FlagUser, "", config.FlagDescUser)
	}

	cmd.AddCommand(set, del)
	return cmd
}

// readPassword returns the first line of r. Echo suppression is left to the
// caller's shell, for instance `read -s`.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: %w", config.ErrReadStdin, err)
	}
	return line, nil
}
