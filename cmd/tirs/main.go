package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"tirs/cmd"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tirs",
		Short:        "Yield analytics for Argentine fixed income",
		SilenceUsage: true,
	}
	root.AddCommand(apiCmd(), runCmd(), carryCmd())
	return root
}

func apiCmd() *cobra.Command {
	var port int

	c := &cobra.Command{
		Use:   "api",
		Short: "Start the HTTP API",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			return handler.StartApi(port)
		},
	}
	c.Flags().IntVar(&port, "port", 3009, "port to listen on")
	return c
}

func runCmd() *cobra.Command {
	var out string
	var settlementFlag string

	c := &cobra.Command{
		Use:   "run",
		Short: "Compute TIRs for the whole bond universe and write a CSV report",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			settlement, err := parseSettlement(settlementFlag)
			if err != nil {
				return err
			}

			result, err := handler.TIRRunService.Run(context.Background(), settlement)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			defer f.Close()

			if err := handler.TIRRunService.WriteReport(f, result); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			s := result.Summary
			fmt.Printf("run %s: %d bonds, %d priced, %d with TIR\n",
				result.RunID, s.TotalBonds, s.BondsWithPrices, s.BondsWithTIR)
			fmt.Printf("avg %.2f%%  max %.2f%%  min %.2f%%  stdev %.2f%%\n",
				s.AvgTIR*100, s.MaxTIR*100, s.MinTIR*100, s.StdevTIR*100)
			fmt.Printf("report written to %s\n", out)
			return nil
		},
	}
	c.Flags().StringVar(&out, "out", "tirs.csv", "output CSV path")
	c.Flags().StringVar(&settlementFlag, "settlement", "", "settlement date (YYYY-MM-DD), defaults to today")
	return c
}

func carryCmd() *cobra.Command {
	var settlementFlag string

	c := &cobra.Command{
		Use:   "carry",
		Short: "Project USD carry-trade returns across FX scenarios",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			settlement, err := parseSettlement(settlementFlag)
			if err != nil {
				return err
			}

			analysis, err := handler.CarryTradeService.Analyze(context.Background(), settlement)
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(analysis, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
	c.Flags().StringVar(&settlementFlag, "settlement", "", "settlement date (YYYY-MM-DD), defaults to today")
	return c
}

func parseSettlement(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now().UTC(), nil
	}
	settlement, err := time.Parse("2006-01-02", flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid settlement date %q: %w", flag, err)
	}
	return settlement, nil
}
