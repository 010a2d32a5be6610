package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/FlasH-RUS/ubs2ynab/internal/pipeline"
)

// CSVOptions holds the flags shared by the three CSV import modes.
type CSVOptions struct {
	*RootOptions
	File      string
	AccountID string
}

// NewCreditCSVCommand creates the UBS credit card CSV import command.
func NewCreditCSVCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CSVOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "credit-csv",
		Short: "Import a UBS credit card CSV export",
		Example: `  ubs2ynab credit-csv --csv export.csv --account-id <ynab-account> \
      --access-token <token> --budget-id <budget>`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCSVImport(cmd.Context(), opts, (*pipeline.Importer).ImportCreditCSV)
		},
	}

	addCSVFlags(cmd, opts)
	return cmd
}

// NewDebitCSVCommand creates the UBS debit account CSV import command.
func NewDebitCSVCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CSVOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "debit-csv",
		Short:        "Import a UBS debit account CSV export",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCSVImport(cmd.Context(), opts, (*pipeline.Importer).ImportDebitCSV)
		},
	}

	addCSVFlags(cmd, opts)
	return cmd
}

// NewRevolutCSVCommand creates the Revolut statement CSV import command.
func NewRevolutCSVCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CSVOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "revolut-csv",
		Short:        "Import a Revolut account statement CSV",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCSVImport(cmd.Context(), opts, (*pipeline.Importer).ImportRevolutCSV)
		},
	}

	addCSVFlags(cmd, opts)
	return cmd
}

func addCSVFlags(cmd *cobra.Command, opts *CSVOptions) {
	cmd.Flags().StringVar(&opts.File, "csv", "", "CSV file to import (required)")
	cmd.Flags().StringVar(&opts.AccountID, "account-id", "", "destination YNAB account id (required)")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("account-id")
}

func runCSVImport(ctx context.Context, opts *CSVOptions, do func(*pipeline.Importer, context.Context, io.Reader, string) error) error {
	imp, _, err := opts.newImporter()
	if err != nil {
		return err
	}

	f, err := os.Open(opts.File)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return do(imp, ctx, f, opts.AccountID)
}
