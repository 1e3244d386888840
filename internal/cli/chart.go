package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/report"
)

// chartInput collects the chart flags; validated as one struct so every
// bad field is reported at once.
type chartInput struct {
	Birth string `json:"birth" validate:"required,numdate"`
	Ref   string `json:"ref" validate:"omitempty,numdate"`
}

type weekInput struct {
	Date string `json:"date" validate:"omitempty,numdate"`
}

// newChartCommand computes the chart of --birth against --ref (default today).
func (a *App) newChartCommand() *cobra.Command {
	var in chartInput

	cmd := &cobra.Command{
		Use:   config.CmdUseChart,
		Short: config.CmdShortChart,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.Validator.Struct(in); err != nil {
				return a.userError(err)
			}

			ref := in.Ref
			if ref == "" {
				ref = numerology.FromTime(a.Clock.Now()).String()
			}

			res, err := numerology.Compute(in.Birth, ref)
			if err != nil {
				return a.userError(err)
			}
			return a.renderer(cmd).Chart(res)
		},
	}

	cmd.Flags().StringVar(&in.Birth, config.FlagBirth, "", config.FlagDescBirth)
	cmd.Flags().StringVar(&in.Ref, config.FlagRef, "", config.FlagDescRef)
	_ = cmd.MarkFlagRequired(config.FlagBirth)
	return cmd
}

// newWeekCommand prints the forecast of the week containing --date.
func (a *App) newWeekCommand() *cobra.Command {
	var in weekInput

	cmd := &cobra.Command{
		Use:   config.CmdUseWeek,
		Short: config.CmdShortWeek,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.Validator.Struct(in); err != nil {
				return a.userError(err)
			}

			reference := a.Clock.Now()
			if in.Date != "" {
				d, err := numerology.ParseDate(in.Date)
				if err != nil {
					return a.userError(err)
				}
				// Local midnight, so the week matches the user's calendar.
				reference = d.Time(time.Local)
			}

			return a.renderer(cmd).Week(favorability.GenerateWeek(reference))
		},
	}

	cmd.Flags().StringVar(&in.Date, config.FlagDate, "", config.FlagDescDate)
	return cmd
}

// renderer writes to the command output in the configured format.
func (a *App) renderer(cmd *cobra.Command) *report.Renderer {
	return report.New(cmd.OutOrStdout(), a.Settings.Output, a.Translator)
}

// userError replaces err by its localized message while keeping it
// matchable with errors.Is.
func (a *App) userError(err error) error {
	msg := a.Translator.Error(err)
	if msg == "" || msg == err.Error() {
		return err
	}
	return &localizedError{msg: msg, err: err}
}

// localizedError shows a translated message for a core error.
type localizedError struct {
	msg string
	err error
}

func (e *localizedError) Error() string { return e.msg }
func (e *localizedError) Unwrap() error { return e.err }
