package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/application"
	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *app) *cobra.Command {
	var (
		expr   string
		next   int
		out    reportFlags
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Submit for stored accounts on a cron schedule until interrupted",
		Long: "Run a submission for every stored account each time the cron expression fires.\n" +
			"Expressions use five fields (or descriptors such as @hourly) evaluated in UTC+8.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scheduler := application.NewScheduler(app.logger)

			if next > 0 {
				return printNextActivations(cmd, scheduler, expr, app.now(), next, app.cfg.Steps)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return scheduler.Run(ctx, expr, func(ctx context.Context) {
				logger := withRunID(app.logger)

				pairs, err := app.accounts.Pairs(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "load stored accounts", "error", err)
					return
				}
				if len(pairs) == 0 {
					logger.WarnContext(ctx, "no stored accounts, skipping run")
					return
				}

				report, err := app.submit(ctx, cmd, logger, pairs, false)
				if err != nil {
					logger.ErrorContext(ctx, "scheduled run interrupted", "error", err)
				}
				if err := writeReport(cmd, app, report, out); err != nil {
					logger.ErrorContext(ctx, "write report", "error", err)
				}
			})
		},
	}

	cmd.Flags().StringVar(&expr, "cron", "", "Cron expression, e.g. \"0 */2 * * *\"")
	cmd.Flags().IntVar(&next, "next", 0, "Print the next N activation times and exit")
	cmd.Flags().Int("parallel", 1, "Number of accounts processed at once")
	cmd.Flags().String("template", "", "Path to the band data template (default \"upload_json.txt\")")
	out.register(cmd)
	_ = cmd.MarkFlagRequired("cron")

	return cmd
}

// printNextActivations lists upcoming firings with the step range each would use.
func printNextActivations(cmd *cobra.Command, scheduler *application.Scheduler, expr string, from time.Time, count int, cfg domain.StepConfig) error {
	for range count {
		at, err := scheduler.Next(expr, from)
		if err != nil {
			return err
		}
		if at.IsZero() {
			break
		}

		steps := domain.GenerateStepRange(at, cfg)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d-%d\n", at.Format(time.RFC3339), steps.Low, steps.High); err != nil {
			return err
		}
		from = at
	}

	return nil
}
