// Package cli implements the clinicctl command line client for the clinic
// API. It talks to the same REST backend as the dashboard, so receptionists
// and operators can script exports and checks without a browser.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"clinic-admin/internal/restapi"
)

var (
	version = "dev"
	commit  = "none"
)

// apiTimeout bounds every CLI request to the backend.
const apiTimeout = 15 * time.Second

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]any{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// cliState carries the resolved connection settings into subcommands.
type cliState struct {
	host    string
	token   string
	output  string
	profile string
}

func (s *cliState) client() *restapi.Client {
	return restapi.NewWithBase(s.host, apiTimeout)
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Clinic administration CLI",
		Long:          "Command-line interface for the clinic REST API: accounts, patients, medicines, invoices and reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
			}
			p := cfg.ActiveProfile(state.profile)

			// Precedence: flag > env > profile > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("CLINIC_HOST"); v != "" {
					state.host = v
				} else if p.Host != "" {
					state.host = p.Host
				}
			}
			if !cmd.Flags().Changed("token") {
				if v := os.Getenv("CLINIC_TOKEN"); v != "" {
					state.token = v
				} else if p.Token != "" {
					state.token = p.Token
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("CLINIC_OUTPUT"); v != "" {
					state.output = v
				} else if p.Output != "" {
					state.output = p.Output
				}
			}
			return validateOutputFormat(state.output)
		},
	}

	bindConnectionFlags(rootCmd.PersistentFlags(), state)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAuthCmd(state))
	rootCmd.AddCommand(newMeCmd(state))
	rootCmd.AddCommand(newListCmd(state))
	rootCmd.AddCommand(newReportCmd(state))

	return rootCmd
}

// bindConnectionFlags registers the connection flags shared by every
// subcommand.
func bindConnectionFlags(fs *pflag.FlagSet, state *cliState) {
	fs.StringVar(&state.host, "host", "http://localhost:8000", "API host URL")
	fs.StringVar(&state.token, "token", "", "Bearer token for authentication")
	fs.StringVarP(&state.output, "output", "o", "table", "Output format (table, json)")
	fs.StringVarP(&state.profile, "profile", "p", "", "Config profile to use")
}
