// Command badgers injects synthetic outliers into CSV datasets for testing
// the robustness of downstream analysis pipelines.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/generators/tabular"
	"github.com/hed1ad/badgers/pkg/generators/timeseries"
	"github.com/hed1ad/badgers/pkg/io/csv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "badgers",
		Short:         "Inject statistically principled outliers into clean datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTabularCmd())
	root.AddCommand(newTimeSeriesCmd())
	return root
}

func newTabularCmd() *cobra.Command {
	var (
		input       string
		output      string
		strategy    string
		percentage  int
		seed        int64
		noHeader    bool
		labelColumn bool
	)

	cmd := &cobra.Command{
		Use:   "tabular",
		Short: "Append synthesized outlier rows to a tabular CSV dataset",
		Long: "Reads a numeric CSV dataset, generates outliers with the chosen strategy,\n" +
			"and writes the original rows plus the generated ones (labeled \"outliers\")\n" +
			"to the output file.\n\nStrategies: " + strings.Join(tabular.Names(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := tabular.New(strategy, seed, percentage)
			if err != nil {
				return err
			}

			reader, err := csv.NewReader(input, csv.WithHeader(!noHeader), csv.WithLabelColumn(labelColumn))
			if err != nil {
				return err
			}
			X, y, err := reader.Read()
			reader.Close()
			if err != nil {
				return err
			}

			points, labels, err := gen.Generate(X, y)
			if err != nil {
				var shortfall *generators.ShortfallError
				if !errors.As(err, &shortfall) {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", shortfall)
			}

			var opts []csv.WriterOption
			if headers := reader.Headers(); headers != nil {
				if !labelColumn {
					headers = append(headers, "label")
				}
				opts = append(opts, csv.WithHeaders(headers))
			}
			writer, err := csv.NewWriter(output, opts...)
			if err != nil {
				return err
			}
			if y == nil {
				y = make([]string, len(X))
			}
			if err := writer.Write(X, y); err != nil {
				writer.Close()
				return err
			}
			if err := writer.Write(points, labels); err != nil {
				writer.Close()
				return err
			}
			if err := writer.Close(); err != nil {
				return err
			}

			cmd.Printf("wrote %d original rows and %d outliers to %s\n", len(X), len(points), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input CSV dataset (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV dataset (required)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "zscore", "outlier strategy: "+strings.Join(tabular.Names(), ", "))
	cmd.Flags().IntVarP(&percentage, "percentage", "p", 10, "percentage of outliers to generate, in [0, 100]")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "input has no header row")
	cmd.Flags().BoolVar(&labelColumn, "label-column", false, "treat the last input column as a label")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func newTimeSeriesCmd() *cobra.Command {
	var (
		input     string
		output    string
		strategy  string
		nOutliers int
		seed      int64
		noHeader  bool
	)

	cmd := &cobra.Command{
		Use:   "timeseries",
		Short: "Corrupt rows of a time-series CSV dataset in place",
		Long: "Reads a numeric CSV time series (rows in temporal order), mutates randomly\n" +
			"chosen rows with the chosen strategy, and writes the result to the output\n" +
			"file.\n\nStrategies: " + strings.Join(timeseries.Names(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := timeseries.New(strategy, seed, nOutliers)
			if err != nil {
				return err
			}

			reader, err := csv.NewReader(input, csv.WithHeader(!noHeader))
			if err != nil {
				return err
			}
			X, _, err := reader.Read()
			reader.Close()
			if err != nil {
				return err
			}

			if _, _, err := gen.Generate(X, nil); err != nil {
				return err
			}

			var opts []csv.WriterOption
			if headers := reader.Headers(); headers != nil {
				opts = append(opts, csv.WithHeaders(headers))
			}
			writer, err := csv.NewWriter(output, opts...)
			if err != nil {
				return err
			}
			if err := writer.Write(X, nil); err != nil {
				writer.Close()
				return err
			}
			if err := writer.Close(); err != nil {
				return err
			}

			cmd.Printf("mutated rows %v, wrote %d rows to %s\n", gen.OutlierIndices(), len(X), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input CSV time series (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV time series (required)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "zeros", "outlier strategy: "+strings.Join(timeseries.Names(), ", "))
	cmd.Flags().IntVarP(&nOutliers, "outliers", "n", 10, "number of rows to corrupt")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "input has no header row")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}
