package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthLoginCmd(state))
	cmd.AddCommand(newAuthTokenCmd())
	return cmd
}

func newAuthLoginCmd(state *cliState) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the token to the active profile",
		Long:  "Exchange a username and password for an API token. The password is prompted on the terminal unless --password is given.",
		Example: `  # Interactive login
  clinicctl auth login --username admin

  # Non-interactive (scripts)
  clinicctl auth login --username admin --password "$CLINIC_PASSWORD"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			token, err := state.client().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := saveTokenToActiveProfile(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{"status": "ok", "path": ConfigPath()})
			}
			_, _ = fmt.Fprintf(os.Stdout, "Signed in, token saved to %s\n", ConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Login name")
	cmd.Flags().StringVar(&password, "password", "", "Password (omit to be prompted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	var (
		subject string
		secret  string
		expires time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a dev-mode JWT token and save it to the active profile",
		Long:  "Generate an HS256 JWT token for development against a backend running with a known signing secret.",
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()
			claims := jwt.MapClaims{
				"sub": subject,
				"iat": now.Unix(),
				"exp": now.Add(expires).Unix(),
			}

			token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			if err := saveTokenToActiveProfile(signed); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Login name (JWT sub claim)")
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (HS256)")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "Token expiry duration")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
