package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q: must be 'text', 'json' or 'yaml'", s)
	}
}

// ColorMode controls styling of text reports.
type ColorMode int

const (
	// ColorAuto styles output only when the writer is a colour-capable terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Render writes v to w in the requested format.
func Render(w io.Writer, v View, format Format, color ColorMode) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return renderText(w, v, color)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

type styles struct {
	heading lipgloss.Style
	key     lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer, color ColorMode) styles {
	r := lipgloss.NewRenderer(w)
	switch color {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		key:     r.NewStyle().Foreground(lipgloss.Color("214")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func renderText(w io.Writer, v View, color ColorMode) error {
	st := newStyles(w, color)
	var b strings.Builder

	b.WriteString(st.heading.Render("Entries") + "\n")
	for _, e := range v.Entries {
		fmt.Fprintf(&b, "  %s  %s  %s %s\n", st.key.Render(e.Name), strings.Join(e.Sources, ", "), st.muted.Render("->"), e.File)
	}

	b.WriteString(st.heading.Render("Output") + "\n")
	fmt.Fprintf(&b, "  %s  %s\n", st.key.Render("path"), v.Output.Path)
	fmt.Fprintf(&b, "  %s  %s\n", st.key.Render("filename"), v.Output.Filename)

	b.WriteString(st.heading.Render("Rules") + "\n")
	if len(v.Rules) == 0 {
		b.WriteString("  " + st.muted.Render("(none)") + "\n")
	}
	for _, r := range v.Rules {
		fmt.Fprintf(&b, "  %s  %s", st.key.Render(fmt.Sprintf("#%d", r.Index)), r.Test)
		if len(r.Exclude) > 0 {
			fmt.Fprintf(&b, "  %s %s", st.muted.Render("exclude"), strings.Join(r.Exclude, ", "))
		}
		fmt.Fprintf(&b, "  %s %s\n", st.muted.Render("use"), strings.Join(r.Transformers, " ! "))
	}

	if len(v.NoParse) > 0 {
		b.WriteString(st.heading.Render("No-parse") + "\n")
		for _, p := range v.NoParse {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}

	if len(v.DevServer) > 0 {
		b.WriteString(st.heading.Render("Dev server") + "\n")
		for _, k := range sortedKeys(v.DevServer) {
			fmt.Fprintf(&b, "  %s  %t\n", st.key.Render(k), v.DevServer[k])
		}
	}

	if len(v.Matches) > 0 {
		b.WriteString(st.heading.Render("Matches") + "\n")
		for _, m := range v.Matches {
			if m.Rule == nil {
				fmt.Fprintf(&b, "  %s  %s", st.key.Render(m.File), st.muted.Render("no rule"))
			} else {
				fmt.Fprintf(&b, "  %s  rule #%d  %s", st.key.Render(m.File), *m.Rule, strings.Join(m.Transformers, " ! "))
			}
			if m.NoParse {
				b.WriteString("  " + st.muted.Render("(no-parse)"))
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
