package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

// login --email <e> [--password <p>] [--remember]
func loginCmd() *cobra.Command {
	var email, password string
	var remember bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("BOOKIT_PASSWORD")
			}
			if password == "" {
				p, err := prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			sess, err := appCtx.Auth.Login(cmd.Context(), domain.LoginRequest{Email: email, Password: password}, remember)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", sess.User.Name, sess.User.Role)
			if !remember {
				fmt.Fprintln(cmd.ErrOrStderr(), "session not remembered; pass --remember to keep it between runs")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (default $BOOKIT_PASSWORD or prompt)")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the session on disk")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			u, err := appCtx.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, u, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s <%s>\nid:   %s\nrole: %s\n", u.Name, u.Email, u.ID, u.Role)
				return err
			})
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
