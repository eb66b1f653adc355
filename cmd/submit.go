package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	reportadapter "github.com/bnema/mifit-steps-cli/internal/adapters/render/report"
	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errNoAccounts = errors.New("no accounts to submit: pass users and passwords, or store accounts with 'mfs account add'")

func newSubmitCmd(app *app) *cobra.Command {
	var out reportFlags

	cmd := &cobra.Command{
		Use:   "submit [users passwords]",
		Short: "Submit today's step count once",
		Long: "Log in to every account and submit a step count drawn from the range for the current minute.\n" +
			"users and passwords are '" + domain.DefaultPairSeparator + "'-separated lists matched by position; " +
			"without them the stored accounts are used.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts no arguments or exactly 2 (users, passwords), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := resolvePairs(cmd.Context(), app, args)
			if err != nil {
				return err
			}

			report, err := app.submit(cmd.Context(), cmd, withRunID(app.logger), pairs, !out.json)
			if err != nil {
				return err
			}

			return writeReport(cmd, app, report, out)
		},
	}

	cmd.Flags().Int("parallel", 1, "Number of accounts processed at once")
	cmd.Flags().String("template", "", "Path to the band data template (default \"upload_json.txt\")")
	out.register(cmd)

	return cmd
}

func resolvePairs(ctx context.Context, app *app, args []string) ([]domain.Pair, error) {
	var (
		pairs []domain.Pair
		err   error
	)
	if len(args) == 2 {
		pairs, err = domain.ParsePairs(args[0], args[1], domain.DefaultPairSeparator)
	} else {
		pairs, err = app.accounts.Pairs(ctx)
	}
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, errNoAccounts
	}

	return pairs, nil
}

func (a *app) submit(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, pairs []domain.Pair, withProgress bool) (domain.RunReport, error) {
	if !withProgress {
		return a.runner(logger, nil).Run(ctx, pairs)
	}

	return runWithProgress(ctx, cmd.ErrOrStderr(), len(pairs), func(ctx context.Context, onOutcome func(domain.Outcome)) (domain.RunReport, error) {
		return a.runner(logger, onOutcome).Run(ctx, pairs)
	})
}

// reportFlags select how a finished run is printed.
type reportFlags struct {
	json      bool
	summary   bool
	localTime bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "Append the step range and the submitted count")
	cmd.Flags().BoolVar(&f.localTime, "local-time", false, "Print timestamps in the local time zone instead of UTC+8")
}

func (f reportFlags) renderOptions() reportadapter.RenderOptions {
	opts := reportadapter.RenderOptions{Summary: f.summary}
	if f.localTime {
		opts.Location = time.Local
	}
	return opts
}

func writeReport(cmd *cobra.Command, app *app, report domain.RunReport, flags reportFlags) error {
	if flags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reportadapter.ToJSON(report))
	}

	rendered, err := app.render(report, flags.renderOptions())
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
