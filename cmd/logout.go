package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zyphh/mindly/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.Open()
		if err != nil {
			return err
		}
		if !sess.Present() {
			fmt.Println("No session to clear.")
			return nil
		}
		if err := sess.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}
