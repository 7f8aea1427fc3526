package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craftedcodex/senthrix/pkg/controller"
	"github.com/craftedcodex/senthrix/pkg/store"
)

func TestRenderText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "hello", "hello"},
		{"strips markup", `explore <a href="https://example.com">here</a>`, "explore here"},
		{"undoes escapes", "fish &amp; chips &lt;3", "fish & chips <3"},
		{"quotes", "&quot;hi&quot; it&#39;s me", `"hi" it's me`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderText(tt.input))
		})
	}
}

func TestTerminalRenderer_Messages(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminalRenderer(&buf)

	r.OnMessageAppended(store.Message{Text: "hello", IsUser: true})
	r.OnMessageAppended(store.Message{Text: "hi <b>there</b>", IsUser: false})

	out := buf.String()
	assert.Contains(t, out, "you> hello")
	assert.Contains(t, out, "bot> hi there")
}

func TestTerminalRenderer_ErrorsAndActiveChat(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminalRenderer(&buf)

	r.OnError("Message too long", controller.SeverityWarning)
	r.OnActiveChatChanged(&store.Chat{
		Title:    "Plans",
		Messages: []store.Message{{Text: "first", IsUser: true}},
	})
	r.OnActiveChatChanged(nil)

	out := buf.String()
	assert.Contains(t, out, "[warning] Message too long")
	assert.Contains(t, out, "== Plans ==")
	assert.Contains(t, out, "you> first")
}
