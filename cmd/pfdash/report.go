package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfdash/finance-dashboard/internal/config"
	"github.com/pfdash/finance-dashboard/internal/output"
)

func newReportCmd() *cobra.Command {
	var (
		input  string
		format string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the dashboard of a profile document",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.NewInputParser().LoadFromFile(input)
			if err != nil {
				return err
			}
			logger.Debugf("loaded profile %s", input)

			report, err := newEngine().BuildDashboard(context.Background(), *profile)
			if err != nil {
				return err
			}

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				path, err := output.SaveReport(report, format, outDir)
				if err != nil {
					return err
				}
				logger.Infof("report written to %s", path)
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), report, format)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "profile document (YAML or JSON)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, csv, series-csv")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "write the report to a timestamped file in this directory")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
