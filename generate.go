package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/antithesishq/promptgen/internal/config"
	"github.com/antithesishq/promptgen/internal/generate"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate prompts from a template",
	Long:  "Generate prompts from a template. Placeholders like {color} draw from the list of the same name; {color 1} draws from an independent copy of it and {color+shape} from both lists combined.",
	Example: `  promptgen generate -t "a {color} {shape}, {style}" -n 10 --library ./library
  promptgen generate -t "{subject}, {art_by}" --lists lists.yaml --exhaust-list --save=false`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd.Flags(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfgFile, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		// Validate before NewSink, which may contact the bucket.
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := generate.NewSink(ctx, cfg)
		if err != nil {
			return err
		}
		runner := &generate.Runner{
			Config: cfg,
			Logger: logger,
			Out:    cmd.OutOrStdout(),
			Sink:   s,
		}
		if _, err := runner.Run(ctx, nil); err != nil {
			logger.Error("generate failed", "err", err)
			return err
		}
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "promptgen.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(initConfigCmd)

	config.RegisterFlags(generateCmd.Flags())
}
