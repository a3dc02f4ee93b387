package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "promptgen",
	Short: "Generate randomized prompts from word lists",
	Long:  "Generate randomized text prompts by filling {placeholders} in a template with words drawn from named lists, then deduplicate the results.",
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "emit logs in JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "emit debug logs")
	rootCmd.PersistentFlags().String("config", "", "config file (default: promptgen.yaml in the working directory)")
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger writes to stderr so that echoed prompts on stdout stay clean.
func newLogger(flags *pflag.FlagSet, w io.Writer) (*slog.Logger, error) {
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	})
	if asJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: false,
			Level:     level,
		})
	}
	return slog.New(handler), nil
}

func orFatal[T any](val T, err error) T {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return val
}
