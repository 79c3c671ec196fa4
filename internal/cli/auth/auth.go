// Package auth holds all cli commands for the identity service
// e.g., dealboard auth ...
package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/session"
)

// PasswordEnv is read when neither --password nor --password-stdin is given
const PasswordEnv = "DEALBOARD_PASSWORD"

// AuthCmd returns the auth parent command
func AuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out, and manage your account",
		Long: `Manage the account used by dealboard. Credentials are checked by the
identity service configured under "identity" in the config file; the
resulting session is kept in local storage for 24 hours.`,
	}

	cmd.AddCommand(LoginCmd())
	cmd.AddCommand(SignupCmd())
	cmd.AddCommand(LogoutCmd())
	cmd.AddCommand(WhoamiCmd())
	cmd.AddCommand(PasswordCmd())
	cmd.AddCommand(ResetCmd())
	cmd.AddCommand(RecoverCmd())

	return cmd
}

// addPasswordFlags registers the password input flags shared by several commands
func addPasswordFlags(cmd *cobra.Command) {
	cmd.Flags().String("password", "", "Password (prefer --password-stdin or $"+PasswordEnv+")")
	cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
}

// readPassword takes the password from the flag, stdin, or the environment, in that order
func readPassword(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		password, _ := cmd.Flags().GetString("password")
		return password, nil
	}

	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading password from stdin: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", cli.Usagef("no password on stdin")
		}
		return password, nil
	}

	if password := os.Getenv(PasswordEnv); password != "" {
		return password, nil
	}
	return "", cli.Usagef("password is required: use --password, --password-stdin, or $%s", PasswordEnv)
}

// confirmation defaults to the password itself when --confirm is not given
func confirmation(cmd *cobra.Command, password string) string {
	if cmd.Flags().Changed("confirm") {
		confirm, _ := cmd.Flags().GetString("confirm")
		return confirm
	}
	return password
}

// sessionResult is what session-returning commands print. Tokens stay local.
type sessionResult struct {
	User      models.User `json:"user"`
	IssuedAt  time.Time   `json:"issued_at"`
	ExpiresAt time.Time   `json:"expires_at"`

	headline string
}

func newSessionResult(s *session.Session, headline string) sessionResult {
	return sessionResult{User: s.User, IssuedAt: s.IssuedAt, ExpiresAt: s.ExpiresAt, headline: headline}
}

// GetID implements quiet output
func (r sessionResult) GetID() string {
	return r.User.ID
}

// Render implements cli.Renderer
func (r sessionResult) Render(w io.Writer) error {
	if r.headline != "" {
		fmt.Fprintln(w, styles.SuccessStyle.Render("✓ "+r.headline))
	}
	return renderUser(w, r.User, r.ExpiresAt)
}

func renderUser(w io.Writer, u models.User, expires time.Time) error {
	lines := []string{
		styles.LabelStyle.Render("User:    ") + styles.ValueStyle.Render(u.DisplayName()),
		styles.LabelStyle.Render("Email:   ") + styles.ValueStyle.Render(u.Email),
	}
	if u.Company != nil {
		lines = append(lines, styles.LabelStyle.Render("Company: ")+styles.ValueStyle.Render(*u.Company))
	}
	if u.LastSignInAt != nil {
		lines = append(lines, styles.LabelStyle.Render("Last in: ")+styles.ValueStyle.Render(u.LastSignInAt.Local().Format(time.DateTime)))
	}
	if !expires.IsZero() {
		lines = append(lines, styles.LabelStyle.Render("Expires: ")+styles.ValueStyle.Render(expires.Local().Format(time.DateTime)))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
