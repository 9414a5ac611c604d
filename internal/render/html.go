// Package render turns transcript messages into something a view can show.
package render

import (
	"html"
	"strings"

	"github.com/zhouzirui/thonia-chat/internal/model/chat"
)

var lineBreaks = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "<br>")

// HTML escapes text and turns its line breaks into <br> elements.
func HTML(text string) string {
	return lineBreaks.Replace(html.EscapeString(text))
}

// CSSClasses returns the class list of the element that shows msg.
func CSSClasses(msg chat.Message) string {
	return "message " + string(msg.Sender)
}
