package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zyphh/mindly/internal/api"
)

var insightsDays int

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show streak and AI insights",
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
		fmt.Printf("Current streak: %d day(s)\n\n", streak.Current)

		insights, err := client.Insights(cmd.Context(), insightsDays)
		if err != nil {
			return err
		}
		if len(insights) == 0 {
			fmt.Println("Keep journaling to receive personalized insights.")
			return nil
		}
		for _, ins := range insights {
			fmt.Println("• " + ins)
		}
		return nil
	},
}

func init() {
	insightsCmd.Flags().IntVar(&insightsDays, "days", 30, "Window of entries to analyze")
}
