package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"clinic-admin/internal/domain"
)

func newMeCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated account and its permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := domain.WithToken(cmd.Context(), state.token)
			principal, err := state.client().Me(ctx)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, principal)
			}

			groups := make([]string, 0, len(principal.Groups))
			for _, g := range principal.Groups {
				groups = append(groups, g.Name)
			}
			permissions := make([]string, 0, len(principal.Permissions))
			for p := range principal.Permissions {
				permissions = append(permissions, p)
			}
			sort.Strings(permissions)

			_, _ = fmt.Fprintf(os.Stdout, "Login:       %s\n", principal.LoginName)
			_, _ = fmt.Fprintf(os.Stdout, "Name:        %s\n", principal.DisplayName)
			_, _ = fmt.Fprintf(os.Stdout, "Email:       %s\n", principal.Email)
			_, _ = fmt.Fprintf(os.Stdout, "Groups:      %s\n", strings.Join(groups, ", "))
			_, _ = fmt.Fprintf(os.Stdout, "Permissions: %d\n", len(permissions))
			for _, p := range permissions {
				_, _ = fmt.Fprintf(os.Stdout, "  %s\n", p)
			}
			return nil
		},
	}
}
