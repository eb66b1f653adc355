package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/spf13/cobra"
)

type rangeOutput struct {
	MinuteOfDay int  `json:"minute_of_day"`
	Low         int  `json:"low"`
	High        int  `json:"high"`
	Empty       bool `json:"empty"`
}

func newRangeCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Print the step range for the current minute",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := app.now()
			r := domain.GenerateStepRange(now, app.cfg.Steps)
			out := rangeOutput{
				MinuteOfDay: domain.MinuteOfDay(now),
				Low:         r.Low,
				High:        r.High,
				Empty:       r.IsEmpty(),
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if out.Empty {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "step range is empty")
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d-%d\n", out.Low, out.High)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
