package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfdash/finance-dashboard/internal/calculation"
	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/pfdash/finance-dashboard/internal/output"
	"github.com/pfdash/finance-dashboard/pkg/dateutil"
)

func newSavingsCmd() *cobra.Command {
	var (
		in        calculation.SavingsInput
		frequency string
		goal      float64
		horizon   int
	)
	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Project a savings account and the months needed to reach a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.InitialBalance < 0 || in.MonthlyContribution < 0 || in.AnnualRatePercent < 0 || goal < 0 {
				return fmt.Errorf("balance, contribution, rate and goal must not be negative")
			}
			in.Frequency = domain.ParseInterestFrequency(frequency)
			res := newEngine().ProjectSavings(in, goal, horizon)

			out := cmd.OutOrStdout()
			switch res.Estimate.Outcome {
			case domain.GoalAlreadyMet:
				fmt.Fprintln(out, "Objectif déjà atteint")
			case domain.GoalReachable:
				fmt.Fprintf(out, "Objectif atteint dans %s\n", dateutil.DurationLabel(res.Estimate.Months))
			case domain.GoalUnreachable:
				fmt.Fprintf(out, "Objectif non atteint en %d mois\n", calculation.MaxSavingsMonths)
			}
			for _, p := range res.Display {
				fmt.Fprintf(out, "%-20s %s\n", p.Label, output.FormatCurrency(p.Balance))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.InitialBalance, "balance", 0, "current balance")
	cmd.Flags().Float64Var(&in.MonthlyContribution, "contribution", 0, "monthly contribution")
	cmd.Flags().Float64Var(&in.AnnualRatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().Float64Var(&goal, "goal", 0, "goal amount (0 for none)")
	cmd.Flags().StringVar(&frequency, "frequency", string(domain.FrequencyDaily), "interest frequency: daily, weekly, monthly, annual")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "months to chart (0 derives it from the goal)")
	return cmd
}

func newPEACmd() *cobra.Command {
	in := calculation.PEAInput{}
	cmd := &cobra.Command{
		Use:   "pea",
		Short: "Project a PEA balance up to its contribution ceiling",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.InitialBalance < 0 || in.MonthlyContribution < 0 || in.MonthlyDividend < 0 || in.AnnualROEPercent < 0 {
				return fmt.Errorf("balance, contribution, dividend and ROE must not be negative")
			}
			res := newEngine().ProjectPEA(in)

			out := cmd.OutOrStdout()
			if res.CeilingMonth != nil {
				fmt.Fprintf(out, "Plafond atteint dans %s\n", dateutil.DurationLabel(*res.CeilingMonth))
			} else {
				fmt.Fprintln(out, "Plafond non atteint")
			}
			for _, p := range res.Display {
				if p.NetBalance == nil {
					fmt.Fprintf(out, "%-20s %s\n", p.Label, output.FormatCurrency(p.Balance))
					continue
				}
				fmt.Fprintf(out, "%-20s %s (net %s)\n", p.Label, output.FormatCurrency(p.Balance), output.FormatCurrency(*p.NetBalance))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.InitialBalance, "balance", 0, "current PEA balance")
	cmd.Flags().Float64Var(&in.MonthlyContribution, "contribution", 0, "monthly contribution")
	cmd.Flags().Float64Var(&in.MonthlyDividend, "dividend", 0, "monthly dividends reinvested")
	cmd.Flags().Float64Var(&in.AnnualROEPercent, "roe", 0, "weighted annual return on equity in percent")
	cmd.Flags().Float64Var(&in.Ceiling, "ceiling", calculation.PEACeiling, "contribution ceiling")
	cmd.Flags().IntVar(&in.ExtraMonths, "extra-months", calculation.PEAExtraMonths, "months charted after the growth stops")
	return cmd
}
