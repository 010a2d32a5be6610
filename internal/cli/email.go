package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FlasH-RUS/ubs2ynab/internal/config"
	"github.com/FlasH-RUS/ubs2ynab/internal/mailbox"
	"github.com/FlasH-RUS/ubs2ynab/internal/pipeline"
)

// EmailOptions holds the flags of the notification import mode.
type EmailOptions struct {
	*RootOptions
	IMAPServer string
	Address    string
	Password   string
	Folder     string
	AccountMap string
	Days       int
}

// NewEmailCommand creates the email notification import command. The IMAP
// settings are not individually required flags because the config file can
// supply them; they are validated together before any connection is opened.
func NewEmailCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmailOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "email",
		Short: "Import UBS transaction notifications from a mailbox",
		Long: `Fetches UBS notification emails over IMAP and turns them into YNAB
transactions. Keep the bank's notifications in a dedicated folder via
server-side filtering rules and point --folder at it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmailImport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.IMAPServer, "imap-server", "", "IMAP server, host:port (e.g. imap.gmail.com:993)")
	cmd.Flags().StringVar(&opts.Address, "email-address", "", "mailbox login")
	cmd.Flags().StringVar(&opts.Password, "email-password", "", "mailbox password (or UBS2YNAB_EMAIL_PASSWORD)")
	cmd.Flags().StringVar(&opts.Folder, "folder", "", "mailbox folder holding the notifications")
	cmd.Flags().StringVar(&opts.AccountMap, "account-map", "", `semicolon-separated "alias=ynab-account-id" pairs`)
	cmd.Flags().IntVar(&opts.Days, "days", pipeline.DefaultFetchDays, "how many days of email to fetch")

	return cmd
}

func runEmailImport(opts *EmailOptions, cmd *cobra.Command) error {
	imp, s, err := opts.newImporter()
	if err != nil {
		return err
	}

	src := &mailbox.IMAPSource{
		Server:   firstNonEmpty(opts.IMAPServer, s.file.IMAP.Server),
		Address:  firstNonEmpty(opts.Address, s.file.IMAP.Address),
		Password: firstNonEmpty(opts.Password, s.file.IMAP.Password, s.env.EmailPassword),
		Folder:   firstNonEmpty(opts.Folder, s.file.IMAP.Folder),
	}
	required := []struct {
		flag  string
		value string
	}{
		{"imap-server", src.Server},
		{"email-address", src.Address},
		{"email-password", src.Password},
		{"folder", src.Folder},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("--%s is required for the email import", r.flag)
		}
	}

	accounts := s.file.AccountMap
	if opts.AccountMap != "" {
		accounts, err = config.ParseAccountMap(opts.AccountMap)
		if err != nil {
			return err
		}
	}
	if len(accounts) == 0 {
		return fmt.Errorf("--account-map is required for the email import")
	}

	return imp.ImportNotifications(cmd.Context(), src, accounts, opts.Days)
}
