package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const timeLayout = "2006-01-02 15:04:05 -07:00"

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
	warn  lipgloss.Style
}

func newStyles(color bool) styles {
	label := lipgloss.NewStyle().Width(18)
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, label: label, value: plain, muted: plain, warn: plain}
	}
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD")),
		label: label.Foreground(lipgloss.Color("60")),
		value: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")),
	}
}

// colorFor reports whether w is a terminal that should get styled output.
func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// printer writes aligned label/value rows.
type printer struct {
	w  io.Writer
	st styles
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, st: newStyles(colorFor(w))}
}

func (p *printer) title(format string, args ...any) {
	fmt.Fprintln(p.w, p.st.title.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) row(label, format string, args ...any) {
	fmt.Fprintln(p.w, "  "+p.st.label.Render(label)+p.st.value.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) note(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+p.st.muted.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) warn(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+p.st.warn.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) blank() {
	fmt.Fprintln(p.w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "failed to encode JSON")
}
