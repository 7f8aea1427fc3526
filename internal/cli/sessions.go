package cli

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/craftedcodex/senthrix/pkg/persist"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List persisted chat sessions",
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lg, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer lg.Close()

	gateway, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer gateway.Close()

	snap, err := gateway.Load()
	if errors.Is(err, persist.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "no sessions saved yet")
		return nil
	}
	if err != nil {
		return err
	}

	type row struct {
		id      string
		title   string
		count   int
		created time.Time
	}

	rows := make([]row, 0, len(snap.Chats))
	for id, chat := range snap.Chats {
		rows = append(rows, row{id, chat.Title, len(chat.Messages), chat.CreatedAt})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].created.Equal(rows[j].created) {
			return rows[i].created.Before(rows[j].created)
		}
		return rows[i].id < rows[j].id
	})

	for _, r := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%-30s %3d messages  %s\n",
			r.title, r.count, r.created.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d chats, counter at %d\n", len(rows), snap.ChatCounter)

	return nil
}
