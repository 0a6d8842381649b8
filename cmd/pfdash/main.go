package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pfdash/finance-dashboard/internal/calculation"
	"github.com/pfdash/finance-dashboard/internal/config"
)

var (
	logFormat string
	logger    = log.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pfdash",
		Short:         "Personal finance dashboard: budgets, savings goals and PEA projections",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logger, cmd.ErrOrStderr(), logFormat)
		},
	}
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")

	root.AddCommand(
		newReportCmd(),
		newSavingsCmd(),
		newPEACmd(),
		newExampleCmd(),
		newServeCmd(),
	)
	return root
}

// setupLogger applies LOG_LEVEL and the requested formatter.
func setupLogger(l *log.Logger, out io.Writer, format string) error {
	level, err := config.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return err
	}
	l.SetLevel(level)
	l.SetOutput(out)
	switch format {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return nil
}

func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(calculation.ComponentLogger(logger, "engine"))
	return engine
}
