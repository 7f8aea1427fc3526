package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/craftedcodex/senthrix/pkg/controller"
	"github.com/craftedcodex/senthrix/pkg/store"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// terminalRenderer projects controller notifications onto a terminal.
// It holds no state of its own; the store stays the source of truth.
type terminalRenderer struct {
	out io.Writer
}

func newTerminalRenderer(out io.Writer) *terminalRenderer {
	return &terminalRenderer{out: out}
}

func (r *terminalRenderer) OnChatListChanged() {}

func (r *terminalRenderer) OnActiveChatChanged(chat *store.Chat) {
	if chat == nil {
		return
	}
	fmt.Fprintf(r.out, "\n== %s ==\n", chat.Title)
	for _, msg := range chat.Messages {
		r.printMessage(msg)
	}
}

func (r *terminalRenderer) OnMessageAppended(msg store.Message) {
	r.printMessage(msg)
}

func (r *terminalRenderer) OnBusyChanged(busy bool) {
	if busy {
		fmt.Fprintln(r.out, "...")
	}
}

func (r *terminalRenderer) OnError(message string, severity controller.Severity) {
	fmt.Fprintf(r.out, "[%s] %s\n", severity, message)
}

func (r *terminalRenderer) printMessage(msg store.Message) {
	prefix := "bot"
	if msg.IsUser {
		prefix = "you"
	}
	fmt.Fprintf(r.out, "%s> %s\n", prefix, renderText(msg.Text))
}

// renderText flattens stored message text for a terminal: markup in
// trusted bot replies is stripped and escapes are undone.
func renderText(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	return replacer.Replace(text)
}
