package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/thonia-chat/internal/model/chat"
)

// Terminal formats messages for a line-oriented terminal.
type Terminal struct {
	userStyle   lipgloss.Style
	botStyle    lipgloss.Style
	typingStyle lipgloss.Style
	labelStyle  lipgloss.Style

	UserLabel string
	BotLabel  string
}

// NewTerminal returns the default palette.
func NewTerminal() *Terminal {
	return &Terminal{
		userStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
		botStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		typingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
			Italic(true),
		labelStyle: lipgloss.NewStyle().Bold(true),
		UserLabel:  "vous",
		BotLabel:   "ThonIA",
	}
}

// Format renders msg; continuation lines are indented under the label.
func (t *Terminal) Format(msg chat.Message) string {
	label := t.BotLabel
	style := t.botStyle
	switch msg.Sender {
	case chat.SenderUser:
		label = t.UserLabel
		style = t.userStyle
	case chat.SenderBotTyping:
		style = t.typingStyle
	}

	prefix := label + " > "
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	lines := strings.Split(strings.ReplaceAll(msg.Text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			lines[i] = indent + style.Render(line)
			continue
		}
		lines[i] = t.labelStyle.Render(prefix) + style.Render(line)
	}
	return strings.Join(lines, "\n")
}
