package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/audio-converter/internal/model"
)

// Formatter prints human-readable progress and reports. Colors are used
// only when w is a terminal that supports them.
type Formatter struct {
	w io.Writer

	ok    lipgloss.Style
	fail  lipgloss.Style
	warn  lipgloss.Style
	faint lipgloss.Style
	bold  lipgloss.Style
}

func NewFormatter(w io.Writer) *Formatter {
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:     w,
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		faint: r.NewStyle().Faint(true),
		bold:  r.NewStyle().Bold(true),
	}
}

func (f *Formatter) Outcome(o model.Outcome) {
	if o.OK() {
		fmt.Fprintf(f.w, "%s %s %s\n", f.ok.Render("✔"), o.File.Name, f.faint.Render("→ "+o.OutputPath))
		if o.Replaced != "" {
			fmt.Fprintf(f.w, "  %s\n", f.warn.Render("replaced the output of "+o.Replaced))
		}
		return
	}
	fmt.Fprintf(f.w, "%s %s: %s\n", f.fail.Render("✘"), o.File.Name, o.Error)
}

func (f *Formatter) Skipped(path, reason string) {
	fmt.Fprintf(f.w, "%s %s: %s\n", f.warn.Render("!"), path, reason)
}

func (f *Formatter) Summary(s model.Summary) {
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "%s %d converted, %d failed (%s, %s)\n",
		f.bold.Render("Batch "+s.BatchID+":"), s.Converted, s.Failed, s.Format, formatDuration(s.Duration()))
	if s.Cancelled {
		fmt.Fprintln(f.w, f.warn.Render("Stopped before all files were converted."))
	}
	fmt.Fprintf(f.w, "Output: %s\n", s.OutputDir)
}

func (f *Formatter) FileInfo(name, detail string) {
	if detail == "" {
		detail = f.faint.Render("-")
	}
	fmt.Fprintf(f.w, "%s\t%s\n", name, detail)
}

func (f *Formatter) Format(format model.Format) {
	if format.Container() == format.String() {
		fmt.Fprintln(f.w, format)
		return
	}
	fmt.Fprintf(f.w, "%s\t%s\n", format, f.faint.Render("(written as "+format.Container()+")"))
}

func (f *Formatter) Check(name string, ok bool, detail string) {
	mark := f.ok.Render("✔")
	if !ok {
		mark = f.fail.Render("✘")
	}
	fmt.Fprintf(f.w, "  %s %s: %s\n", mark, name, detail)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintln(f.w, f.ok.Render(msg))
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintln(f.w, f.warn.Render(msg))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
