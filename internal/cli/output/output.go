// Package output renders command results as styled text, markdown, or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how command results are rendered.
type Mode string

const (
	// ModeAuto picks text on a terminal and markdown when piped.
	ModeAuto Mode = "auto"
	// ModeText is human-oriented output, styled when the terminal allows.
	ModeText Mode = "text"
	// ModeMarkdown is plain markdown suitable for docs and pipes.
	ModeMarkdown Mode = "markdown"
	// ModeJSON is machine-readable output.
	ModeJSON Mode = "json"
)

// ValidModes lists the accepted output mode names.
func ValidModes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}
}

// ParseMode validates a mode name from a flag or config file. The empty
// string maps to ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return m, nil
	default:
		return "", fmt.Errorf("invalid output mode %q (valid: %s)", s, strings.Join(ValidModes(), ", "))
	}
}

// Styles holds the lipgloss styles for styled text output. When styling
// is off every field is the zero style, so Render returns its input
// unchanged and call sites never need to branch.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Panel   lipgloss.Style
}

func defaultStyles() *Styles {
	return &Styles{
		Header1: lipgloss.NewStyle().Bold(true).Underline(true),
		Header2: lipgloss.NewStyle().Bold(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func plainStyles() *Styles { return &Styles{} }

// Renderer writes command output in a single mode. Commands obtain one
// from the root command context and branch on EffectiveMode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styled bool
	styles *Styles
}

// NewRenderer builds a renderer for the given writers and mode. Terminal
// detection looks at out; styling additionally honors NO_COLOR and
// CLICOLOR via termenv.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return newRenderer(out, errOut, mode, isTerminal(out))
}

// NewRendererWithTTY overrides terminal detection. Tests use it to pin
// rendering behavior regardless of where output actually goes.
func NewRendererWithTTY(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	return newRenderer(out, errOut, mode, isTTY)
}

func newRenderer(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
	r.styled = r.EffectiveMode() == ModeText && isTTY && !termenv.EnvNoColor()
	if r.styled {
		r.styles = defaultStyles()
	} else {
		r.styles = plainStyles()
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto: text on a terminal, markdown when
// piped. Explicit modes pass through.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Mode returns the requested (unresolved) mode.
func (r *Renderer) Mode() Mode { return r.mode }

// IsTTY reports whether the output writer is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the underlying output writer, for encoders and tables.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header prints a section heading. Level 1 is a title, level 2 a
// subsection.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		return
	}
	if level <= 1 {
		r.Println(r.styles.Header1.Render(text))
	} else {
		r.Println(r.styles.Header2.Render(text))
	}
}

// KeyValue prints a labeled value on one line.
func (r *Renderer) KeyValue(key, value string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatKeyValue(key, value))
		return
	}
	r.Printf("%s %s\n", r.styles.Bold.Render(key+":"), value)
}

// Success prints a confirmation line, with a check mark on styled
// terminals.
func (r *Renderer) Success(msg string) {
	switch {
	case r.EffectiveMode() == ModeMarkdown:
		r.Println("**" + msg + "**")
	case r.styled:
		r.Println(r.styles.Success.Render("✓ " + msg))
	default:
		r.Println(msg)
	}
}

// Muted prints a secondary detail line.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// Warning prints a warning to the error writer so it survives piping.
func (r *Renderer) Warning(msg string) {
	if r.styled {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "warning: "+msg)
}

// Panel prints a titled block: a bordered box on styled terminals, a
// heading with indented lines otherwise.
func (r *Renderer) Panel(title string, lines []string) {
	switch {
	case r.EffectiveMode() == ModeMarkdown:
		r.Println(FormatHeader(2, title))
		for _, line := range lines {
			r.Println("- " + line)
		}
	case r.styled:
		body := r.styles.Bold.Render(title) + "\n" + strings.Join(lines, "\n")
		r.Println(r.styles.Panel.Render(body))
	default:
		r.Println(title)
		for _, line := range lines {
			r.Println("  " + line)
		}
	}
}

// JSON writes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewTable returns a table writer mirrored to the renderer's output,
// with box-drawing borders on styled terminals. Callers append rows and
// invoke Render or RenderMarkdown to match their mode branch.
func (r *Renderer) NewTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	if r.styled {
		t.SetStyle(table.StyleLight)
	}
	return t
}

// FormatHeader renders a markdown heading at the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue renders a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
