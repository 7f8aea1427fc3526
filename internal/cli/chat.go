package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/craftedcodex/senthrix/pkg/controller"
	"github.com/craftedcodex/senthrix/pkg/persist"
	"github.com/craftedcodex/senthrix/pkg/responder"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts an interactive terminal chat. Plain lines are sent as
messages; lines starting with "/" are commands:

  /new              create a chat
  /list             list chats
  /switch <n>       switch to the n-th listed chat
  /rename <title>   rename the active chat
  /delete <n>       delete the n-th listed chat
  /search <query>   search chat titles
  /quit             exit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
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

	st := controller.LoadStore(gateway, cfg.Limits.MaxMessagesPerChat)
	sim := responder.New(
		time.Duration(cfg.Responder.MinDelayMs)*time.Millisecond,
		time.Duration(cfg.Responder.MaxDelayMs)*time.Millisecond,
	)
	defer sim.Stop()

	rd := newTerminalRenderer(cmd.OutOrStdout())
	ctrl := controller.New(st, gateway, sim, rd, cfg.Limits.MaxInputLength)

	if fileGW, ok := gateway.(*persist.FileGateway); ok {
		watcher, err := persist.NewSnapshotWatcher(fileGW, nil)
		if err != nil {
			log.Warn().Err(err).Msg("Snapshot watcher unavailable")
		} else if err := watcher.Start(); err != nil {
			log.Warn().Err(err).Msg("Snapshot watcher failed to start")
		} else {
			defer watcher.Stop()
		}
	}

	if cfg.Retention.Enabled {
		retention := controller.NewRetentionService(
			ctrl,
			cfg.Retention.Schedule,
			time.Duration(cfg.Retention.MaxAgeDays)*24*time.Hour,
		)
		if err := retention.Start(); err != nil {
			log.Warn().Err(err).Msg("Retention service failed to start")
		} else {
			defer retention.Stop()
		}
	}

	rd.OnActiveChatChanged(st.GetActive())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleCommand(cmd, ctrl, line); quit {
				break
			}
			continue
		}

		ctrl.SendUserMessage(line)
	}

	// Let in-flight replies land before tearing down.
	for ctrl.Busy() {
		time.Sleep(50 * time.Millisecond)
	}

	return scanner.Err()
}

func handleCommand(cmd *cobra.Command, ctrl *controller.Controller, line string) bool {
	out := cmd.OutOrStdout()
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true

	case "/new":
		ctrl.NewChat()

	case "/list":
		printChatList(cmd, ctrl)

	case "/switch":
		if id, ok := chatIDByIndex(ctrl, arg); ok {
			ctrl.SwitchChat(id)
		} else {
			fmt.Fprintln(out, "usage: /switch <n> (see /list)")
		}

	case "/rename":
		if arg == "" {
			fmt.Fprintln(out, "usage: /rename <title>")
			break
		}
		ctrl.RenameChat(ctrl.Store().ActiveID(), arg)

	case "/delete":
		if id, ok := chatIDByIndex(ctrl, arg); ok {
			ctrl.DeleteChat(id)
		} else {
			fmt.Fprintln(out, "usage: /delete <n> (see /list)")
		}

	case "/search":
		ids := ctrl.Store().Search(arg)
		if len(ids) == 0 {
			fmt.Fprintln(out, "no chats match")
			break
		}
		matches := make(map[string]bool, len(ids))
		for _, id := range ids {
			matches[id] = true
		}
		for i, info := range ctrl.Store().GetAll() {
			if matches[info.ID] {
				fmt.Fprintf(out, "%3d  %s\n", i+1, info.Title)
			}
		}

	default:
		fmt.Fprintf(out, "unknown command %q\n", name)
	}

	return false
}

func printChatList(cmd *cobra.Command, ctrl *controller.Controller) {
	out := cmd.OutOrStdout()
	activeID := ctrl.Store().ActiveID()

	for i, info := range ctrl.Store().GetAll() {
		marker := " "
		if info.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %3d  %-30s %3d messages\n", marker, i+1, info.Title, info.Messages)
	}
}

func chatIDByIndex(ctrl *controller.Controller, arg string) (string, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", false
	}

	infos := ctrl.Store().GetAll()
	if n < 1 || n > len(infos) {
		return "", false
	}
	return infos[n-1].ID, true
}
