package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	controltower "github.com/towerops/controltower"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the assistant about shipments, or start an interactive session",
	RunE: func(cmd *cobra.Command, args []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		out := cmd.OutOrStdout()

		if len(args) > 0 {
			reply, err := guard.Client().Ask(cmd.Context(), strings.Join(args, " "), nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply)
			return nil
		}

		var history []controltower.ChatTurn
		scanner := bufio.NewScanner(cmd.InOrStdin())
		fmt.Fprintln(out, "assistant ready — empty line exits")
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				return nil
			}

			reply, err := guard.Client().Ask(cmd.Context(), question, history)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply)

			history = append(history,
				controltower.ChatTurn{Role: "user", Content: question},
				controltower.ChatTurn{Role: "assistant", Content: reply},
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
