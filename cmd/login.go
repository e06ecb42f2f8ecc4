package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zyphh/mindly/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and store the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, client, err := backend()
		if err != nil {
			return err
		}

		var username string
		if len(args) == 1 {
			username = args[0]
		} else {
			fmt.Print("Username: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}
			username = strings.TrimSpace(line)
		}
		if username == "" {
			return fmt.Errorf("username is required")
		}

		fmt.Print("Password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}

		token, err := client.Login(context.Background(), username, string(pw))
		if err != nil {
			if errors.Is(err, api.ErrAuthFailed) {
				return fmt.Errorf("wrong username or password")
			}
			return err
		}
		if err := sess.Save(token); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s.\n", username)
		return nil
	},
}
