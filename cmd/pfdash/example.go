package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfdash/finance-dashboard/internal/config"
)

func newExampleCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example profile document",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profile := parser.CreateExampleProfile()
			if outPath == "" {
				return parser.WriteProfile(cmd.OutOrStdout(), profile, config.FormatYAML)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()
			if err := parser.WriteProfile(f, profile, config.FormatForPath(outPath)); err != nil {
				return err
			}
			logger.Infof("example profile written to %s", outPath)
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "file to write (stdout when empty)")
	return cmd
}
