package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/pquerna/otp/totp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	passwordEnv   = "CMSADMIN_PASSWORD"
	totpSecretEnv = "CMSADMIN_TOTP_SECRET"
)

func newLoginCmd(c *cli) *cobra.Command {
	var email, password, totpSecret, totpCode string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the CMS",
		Long: `Sign in with email and password. The password is read from --password,
then $CMSADMIN_PASSWORD, then prompted for.

Accounts with two-factor authentication need --totp-code, or --totp-secret
(or $CMSADMIN_TOTP_SECRET) to generate the current code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				var err error
				if password, err = promptPassword(cmd.InOrStdin(), c.errOut); err != nil {
					return err
				}
			}
			if totpSecret == "" {
				totpSecret = os.Getenv(totpSecretEnv)
			}

			clients, err := c.connect(ctx)
			if err != nil {
				return err
			}

			resp, err := load(ctx, c, "signing in", func(ctx context.Context) (*cmssdk.LoginResponse, error) {
				return clients.CMS.Login(ctx, cmssdk.LoginRequest{Email: email, Password: password})
			})
			if errors.Is(err, cmssdk.ErrTwoFactorRequired) {
				code, codeErr := twoFactorCode(totpCode, totpSecret, time.Now())
				if codeErr != nil {
					return codeErr
				}
				resp, err = clients.CMS.VerifyTwoFactor(ctx, resp.TwoFactorToken, code)
			}
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if c.jsonOutput() {
				return c.printJSON(resp.User)
			}

			who := email
			if resp.User != nil && resp.User.Name != "" {
				who = fmt.Sprintf("%s <%s>", resp.User.Name, resp.User.Email)
			}
			fmt.Fprintln(c.out, c.styles.Accent.Render("Signed in as "+who))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prefer $"+passwordEnv+")")
	cmd.Flags().StringVar(&totpSecret, "totp-secret", "", "base32 TOTP secret used to generate the two-factor code")
	cmd.Flags().StringVar(&totpCode, "totp-code", "", "current two-factor code")
	return cmd
}

// twoFactorCode prefers an explicit code over one generated from secret.
func twoFactorCode(code, secret string, now time.Time) (string, error) {
	if code = strings.TrimSpace(code); code != "" {
		return code, nil
	}
	if secret != "" {
		generated, err := totp.GenerateCode(secret, now)
		if err != nil {
			return "", fmt.Errorf("failed to generate two-factor code: %w", err)
		}
		return generated, nil
	}
	return "", errors.New("two-factor code required: pass --totp-code or --totp-secret")
}

// promptPassword reads a password without echo on a terminal, or one line
// from in otherwise.
func promptPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}
