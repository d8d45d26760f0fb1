package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	controltower "github.com/towerops/controltower"
)

var loginCmd = &cobra.Command{
	Use:   "login [username-or-email]",
	Short: "Log in and persist the session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guard, err := buildGuard(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		reader := bufio.NewReader(cmd.InOrStdin())

		var user string
		if len(args) == 1 {
			user = args[0]
		} else {
			fmt.Fprint(cmd.OutOrStdout(), "username or email: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			user = strings.TrimSpace(line)
		}

		fmt.Fprint(cmd.OutOrStdout(), "password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password := strings.TrimRight(line, "\r\n")

		id, err := guard.Login(cmd.Context(), user, password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s %s (%s)\n", id.FirstName, id.LastName, id.RoleCode)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		guard, err := buildGuard(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		if err := guard.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session's identity and token expiry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		id, _ := guard.CurrentIdentity()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user:  %s %s <%s>\n", id.FirstName, id.LastName, id.Email)
		fmt.Fprintf(out, "role:  %s\n", id.RoleCode)

		sections := controltower.VisibleSections(controltower.RoleCode(id.RoleCode))
		names := make([]string, len(sections))
		for i, s := range sections {
			names[i] = string(s)
		}
		fmt.Fprintf(out, "nav:   %s\n", strings.Join(names, ", "))

		claims, err := guard.TokenClaims()
		if err != nil {
			fmt.Fprintf(os.Stderr, "token not inspectable: %v\n", err)
			return nil
		}
		if !claims.ExpiresAt.IsZero() {
			fmt.Fprintf(out, "token: expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
