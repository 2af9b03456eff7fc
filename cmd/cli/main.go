package main

import (
	"encoding/json"
	"fmt"
	"os"

	"sixsigma/adapters/excel"
	"sixsigma/adapters/stats/engine"
	"sixsigma/app"
	"sixsigma/domain/quality"
	"sixsigma/internal"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sixsigma-cli",
		Short: "Process capability, control chart and cost-benefit analysis",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newConvertCmd(),
		newColumnsCmd(),
		newWhatIfCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	var column string
	var lower, upper float64
	var hasLower, hasUpper bool
	var targetSigma, annualVolume float64
	var concurrency int

	cmd := &cobra.Command{
		Use:   "analyze [data-file]",
		Short: "Run full capability, normality and control analysis over a column",
		Long: `Run the full analysis pipeline over one numeric column of an Excel or
CSV file, or over every numeric column when --column is omitted.

Example: sixsigma-cli analyze production.xlsx --column width_mm --lower 8.5 --upper 11.5 --target-sigma 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := excel.NewDataReader(args[0])
			table, err := reader.Read()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			spec := quality.SpecLimits{}
			if hasLower {
				spec.Lower = &lower
			}
			if hasUpper {
				spec.Upper = &upper
			}

			eng := engine.NewQualityEngine()
			logger := internal.NewLogger(internal.LogLevelWarn)
			service := app.NewAnalysisService(eng, nil, concurrency, logger)

			if column == "" {
				outcomes, err := service.AnalyzeTable(cmd.Context(), table, spec, targetSigma)
				if err != nil {
					return err
				}
				return printJSON(outcomes)
			}

			sample, err := table.NumericColumn(column)
			if err != nil {
				return err
			}
			snapshot, err := service.Analyze(cmd.Context(), engine.AnalyzeRequest{
				Dataset:      table.Name,
				Column:       column,
				Sample:       sample,
				Spec:         spec,
				TargetSigma:  targetSigma,
				AnnualVolume: annualVolume,
			})
			if err != nil {
				return err
			}
			return printJSON(snapshot)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column to analyze (all numeric columns when omitted)")
	cmd.Flags().Float64Var(&lower, "lower", 0, "Lower specification limit")
	cmd.Flags().Float64Var(&upper, "upper", 0, "Upper specification limit")
	cmd.Flags().Float64Var(&targetSigma, "target-sigma", 0, "Target sigma for the what-if projection")
	cmd.Flags().Float64Var(&annualVolume, "annual-volume", 0, "Annual production volume for the financial model")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Parallel column analyses in batch mode")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasLower = cmd.Flags().Changed("lower")
		hasUpper = cmd.Flags().Changed("upper")
	}

	return cmd
}

func newConvertCmd() *cobra.Command {
	var sigma, dpmo float64
	var table bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between sigma level, DPMO and yield",
		Example: `  sixsigma-cli convert --sigma 4.5
  sixsigma-cli convert --dpmo 6210
  sixsigma-cli convert --table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			converter := engine.NewSigmaConverter()

			if table {
				return printJSON(converter.ConversionTable())
			}

			switch {
			case cmd.Flags().Changed("sigma"):
				d := converter.DPMOFromSigma(sigma)
				return printJSON(map[string]float64{
					"sigma_level": sigma,
					"dpmo":        d,
					"yield_pct":   converter.YieldPct(d),
				})
			case cmd.Flags().Changed("dpmo"):
				return printJSON(map[string]float64{
					"sigma_level": converter.SigmaFromDPMO(dpmo),
					"dpmo":        dpmo,
					"yield_pct":   converter.YieldPct(dpmo),
				})
			default:
				return fmt.Errorf("one of --sigma, --dpmo or --table is required")
			}
		},
	}

	cmd.Flags().Float64Var(&sigma, "sigma", 0, "Sigma level to convert")
	cmd.Flags().Float64Var(&dpmo, "dpmo", 0, "DPMO to convert")
	cmd.Flags().BoolVar(&table, "table", false, "Print the full sigma conversion table")

	return cmd
}

func newColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns [data-file]",
		Short: "Guess column roles (date, defect, opportunity, measurement) from a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := excel.NewDataReader(args[0])
			table, err := reader.Read()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			eng := engine.NewQualityEngine()
			service := app.NewAnalysisService(eng, nil, 1, internal.NewLogger(internal.LogLevelWarn))
			return printJSON(service.ClassifyColumns(table))
		},
	}

	return cmd
}

func newWhatIfCmd() *cobra.Command {
	var currentDPMO, targetSigma, annualVolume float64

	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Project the impact of reaching a target sigma level",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine.NewQualityEngine()
			currentSigma := eng.Converter.SigmaFromDPMO(currentDPMO)

			scenario, err := eng.WhatIf.Project(currentSigma, currentDPMO, targetSigma)
			if err != nil {
				return err
			}

			result := map[string]interface{}{"scenario": scenario}
			if annualVolume > 0 {
				result["financial"] = eng.Financial.Evaluate(
					currentDPMO, scenario.TargetDPMO, annualVolume,
					quality.DefaultCostAssumptions(), quality.DefaultProjectCosts(),
					engine.DefaultDiscountRate,
				)
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&currentDPMO, "current-dpmo", 0, "Current defects per million opportunities")
	cmd.Flags().Float64Var(&targetSigma, "target-sigma", 0, "Target sigma level")
	cmd.Flags().Float64Var(&annualVolume, "annual-volume", 0, "Annual volume for cost-benefit evaluation")
	cmd.MarkFlagRequired("current-dpmo")
	cmd.MarkFlagRequired("target-sigma")

	return cmd
}
