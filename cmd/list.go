package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zyphh/mindly/internal/api"
	"github.com/zyphh/mindly/internal/utils"
)

var (
	listLimit   int
	listPage    int
	listFormat  string
	listNoColor bool
	listShowID  bool
	listTags    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long: `Examples:
	mindly list                           # most recent entries
	mindly list --format table            # table format
	mindly list --format json             # machine readable
	mindly list --tags gratitude,work     # filter by tags
	mindly list --page 2 --limit 20       # pagination`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sess, client, err := backend()
		if err != nil {
			return err
		}
		if !sess.Present() {
			return fmt.Errorf("no session; run `mindly login` first")
		}

		entries, err := client.Entries(cmd.Context())
		if err != nil {
			if errors.Is(err, api.ErrAuthFailed) {
				return fmt.Errorf("session expired; run `mindly login` again")
			}
			return err
		}
		entries = filterByTags(entries, listTags)

		if listLimit <= 0 || listLimit > 1000 {
			listLimit = 50
		}
		pagination := utils.NewPagination(len(entries), listLimit, listPage)
		pageEntries := []api.Entry{}
		if len(entries) > 0 {
			start, end := pagination.GetRange()
			pageEntries = entries[start-1 : end]
		}

		renderConfig := utils.DefaultRenderConfig()
		renderConfig.Location = cfg.Location()
		renderConfig.ShowID = listShowID
		if listNoColor {
			renderConfig.Color = false
		}
		if listFormat != "" {
			renderConfig.Format = utils.OutputFormat(listFormat)
		}

		renderer := utils.NewRenderer(renderConfig)
		output, err := renderer.RenderEntryList(&utils.EntryList{
			Entries:    pageEntries,
			Total:      len(entries),
			Page:       pagination.Current,
			PerPage:    pagination.PerPage,
			TotalPages: pagination.TotalPages,
		})
		if err != nil {
			return err
		}

		fmt.Print(output)
		return nil
	},
}

// filterByTags keeps entries carrying at least one of the requested tags.
func filterByTags(entries []api.Entry, csv string) []api.Entry {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return entries
	}
	wanted := map[string]bool{}
	for _, tag := range strings.Split(csv, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			wanted[tag] = true
		}
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		for _, tag := range e.Tags {
			if wanted[strings.ToLower(tag)] {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum entries to show per page (default 50)")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number to show (for pagination)")
	listCmd.Flags().StringVar(&listFormat, "format", "default", "Output format: default, table, json, csv, compact, quiet")
	listCmd.Flags().BoolVar(&listNoColor, "no-color", false, "Disable colored output")
	listCmd.Flags().BoolVar(&listShowID, "show-id", false, "Show entry identifiers")
	listCmd.Flags().StringVar(&listTags, "tags", "", "Filter by tags (comma-separated)")
}
