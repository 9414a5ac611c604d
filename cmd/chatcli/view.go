package main

import (
	"fmt"
	"io"

	"github.com/zhouzirui/thonia-chat/internal/model/chat"
	"github.com/zhouzirui/thonia-chat/internal/render"
	"github.com/zhouzirui/thonia-chat/internal/service/transcript"
)

// terminalView prints the transcript as it grows. The typing placeholder stays on the
// current line so it can be erased when the reply arrives.
type terminalView struct {
	out        io.Writer
	renderer   *render.Terminal
	transcript *transcript.Service
	prompt     string

	placeholderID string
}

func newTerminalView(out io.Writer, renderer *render.Terminal, prompt string) *terminalView {
	return &terminalView{
		out:        out,
		renderer:   renderer,
		transcript: transcript.NewService(),
		prompt:     prompt,
	}
}

func (v *terminalView) Append(msg chat.Message) {
	v.transcript.Append(msg)
	if msg.IsPlaceholder() {
		v.placeholderID = msg.ID
		fmt.Fprint(v.out, v.renderer.Format(msg))
		return
	}
	fmt.Fprintln(v.out, v.renderer.Format(msg))
}

func (v *terminalView) Remove(id string) {
	v.transcript.Remove(id)
	if id != "" && id == v.placeholderID {
		fmt.Fprint(v.out, "\r\033[2K")
		v.placeholderID = ""
	}
}

// ScrollToLatest is implicit on a terminal; the transcript still records it.
func (v *terminalView) ScrollToLatest() {
	v.transcript.ScrollToLatest()
}

// Clear is a no-op: the line editor already consumed the input.
func (v *terminalView) Clear() {}

func (v *terminalView) Focus() {
	fmt.Fprint(v.out, v.prompt)
}

// SetEnabled is a no-op: input is read only after Submit returns.
func (v *terminalView) SetEnabled(bool) {}

func (v *terminalView) printHistory() {
	for _, msg := range v.transcript.Messages() {
		fmt.Fprintln(v.out, v.renderer.Format(msg))
	}
}
