package cmd

import (
	"fmt"

	"github.com/bnema/mifit-steps-cli/internal/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mfs",
		Short:         "Mi Fit steps CLI (mfs): submit a daily step count for your accounts",
		Long:          "mfs logs in to one or more Mi Fit accounts and submits a step count that grows through the day, either once or on a cron schedule.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	v := config.New()
	rootCmd.PersistentFlags().String("log-level", "", "Log level ("+validLogLevelsStr+")")
	_ = v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	app, err := wireApp(v)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.prepare(cmd)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newRangeCmd(app),
		newSubmitCmd(app),
		newScheduleCmd(app),
	)

	return rootCmd
}

// commandFlagKeys maps flags shared by several commands to their config keys.
var commandFlagKeys = map[string]string{
	"parallel": config.KeyParallel,
	"template": config.KeyTemplatePath,
}

// prepare loads configuration once flags are parsed and installs the logger.
func (a *app) prepare(cmd *cobra.Command) error {
	for name, key := range commandFlagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := a.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}

	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	return nil
}
