package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zyphh/mindly/internal/api"
	"github.com/zyphh/mindly/internal/config"
	"github.com/zyphh/mindly/internal/notify"
	"github.com/zyphh/mindly/internal/schedule"
	"github.com/zyphh/mindly/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "mindly",
	Short: "Journaling with mood analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI()
	},
}

func Execute() error { return rootCmd.Execute() }

// backend wires the pieces every command needs: config, the on-disk
// session and an API client bound to both.
func backend() (config.Config, *session.Store, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, nil, err
	}
	sess, err := session.Open()
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, sess, api.New(cfg.BaseURL, sess), nil
}

func init() {
	// Load config and start reminder if enabled
	cfg, _ := config.Load()

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfg.Reminder.Enabled && cfg.Notifications.Enabled && os.Getenv("MINDLY_NO_REMINDER") != "1" {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			go func() {
				schedule.RunConfigured(ctx, cfg, remind)
			}()
			// We intentionally don't store cancel globally; on process exit, signal cancels
			_ = cancel
		}
		return nil
	}

	rootCmd.AddCommand(tuiCmd, loginCmd, logoutCmd, listCmd, insightsCmd, streakCmd, versionCmd)
}

// remind fires the desktop reminder, with the live streak when a session
// is available.
func remind() {
	streak := 0
	if _, sess, client, err := backend(); err == nil && sess.Present() {
		if s, err := client.Streak(context.Background()); err == nil {
			streak = s.Current
		}
	}
	title, msg := notify.FormatDailyPrompt(streak)
	_ = notify.Info(title, msg)
}
