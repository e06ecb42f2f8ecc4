package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zyphh/mindly/internal/api"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current journaling streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, client, err := backend()
		if err != nil {
			return err
		}
		if !sess.Present() {
			return fmt.Errorf("no session; run `mindly login` first")
		}

		streak, err := client.Streak(cmd.Context())
		if err != nil {
			if errors.Is(err, api.ErrAuthFailed) {
				return fmt.Errorf("session expired; run `mindly login` again")
			}
			return err
		}

		switch streak.Current {
		case 0:
			fmt.Println("No streak yet. Write an entry today to start one.")
		case 1:
			fmt.Println("1 day streak. Come back tomorrow to keep it going.")
		default:
			fmt.Printf("%d day streak. Keep it going!\n", streak.Current)
		}
		return nil
	},
}
