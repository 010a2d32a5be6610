// Package cli wires the import modes into a cobra command tree. Commands
// only parse and validate configuration; all work happens in the pipeline.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/FlasH-RUS/ubs2ynab/internal/config"
	"github.com/FlasH-RUS/ubs2ynab/internal/ledger"
	"github.com/FlasH-RUS/ubs2ynab/internal/logger"
	"github.com/FlasH-RUS/ubs2ynab/internal/pipeline"
)

// RootOptions holds the global flags shared by every import mode.
type RootOptions struct {
	ConfigPath  string
	AccessToken string
	BudgetID    string
	DryRun      bool
	Verbose     bool
}

// NewRootCommand creates the ubs2ynab root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ubs2ynab",
		Short: "Import UBS and Revolut transactions into YNAB",
		Long: `ubs2ynab converts UBS CSV exports, Revolut statements and UBS email
notifications into YNAB transactions with stable import ids, so re-running
an import never creates duplicates.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.AccessToken, "access-token", "", "YNAB personal access token")
	cmd.PersistentFlags().StringVar(&opts.BudgetID, "budget-id", "", "id of the YNAB budget to import into")
	cmd.PersistentFlags().BoolVar(&opts.DryRun, "dry-run", false, "parse and log, but do not call the YNAB API")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewCreditCSVCommand(opts))
	cmd.AddCommand(NewDebitCSVCommand(opts))
	cmd.AddCommand(NewRevolutCSVCommand(opts))
	cmd.AddCommand(NewEmailCommand(opts))

	return cmd
}

// settings is the effective configuration after merging flags, the config
// file and the environment (flags win, then file, then env).
type settings struct {
	accessToken string
	budgetID    string
	file        *config.File
	env         config.Env
}

func (o *RootOptions) resolve() (*settings, error) {
	env := config.LoadEnv()

	file := &config.File{}
	if o.ConfigPath != "" {
		f, err := config.LoadFile(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		file = f
	}

	s := &settings{
		accessToken: firstNonEmpty(o.AccessToken, file.AccessToken, env.AccessToken),
		budgetID:    firstNonEmpty(o.BudgetID, file.BudgetID),
		file:        file,
		env:         env,
	}
	if s.accessToken == "" {
		return nil, errors.New("an access token is required (--access-token, config file, or UBS2YNAB_ACCESS_TOKEN)")
	}
	if s.budgetID == "" {
		return nil, errors.New("a budget id is required (--budget-id or config file)")
	}
	return s, nil
}

// newImporter validates configuration and builds the pipeline for one run.
func (o *RootOptions) newImporter() (*pipeline.Importer, *settings, error) {
	s, err := o.resolve()
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(o.Verbose)

	var submitter ledger.Submitter
	if o.DryRun {
		submitter = &ledger.DryRun{Log: log}
	} else {
		submitter = ledger.NewYNAB(s.accessToken, s.budgetID)
	}

	return pipeline.New(submitter, log), s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
