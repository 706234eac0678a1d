// Package present renders controller snapshots to the terminal
package present

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rcanales/gsfdeck/internal/domain"
	"go.uber.org/zap"
)

const clearScreen = "\x1b[H\x1b[2J"

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	entryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Terminal is a thin presenter writing styled views to a terminal
type Terminal struct {
	logger *zap.Logger
	out    io.Writer
}

// NewTerminal creates a presenter writing to stdout
func NewTerminal(logger *zap.Logger) *Terminal {
	return &Terminal{logger: logger, out: os.Stdout}
}

// Render draws the view for the given snapshot
func (t *Terminal) Render(s domain.Snapshot) {
	fmt.Fprint(t.out, clearScreen+t.view(s))
}

func (t *Terminal) view(s domain.Snapshot) string {
	if s.Mode == domain.ModePlaying {
		return viewPlaying(s)
	}
	return viewList(s)
}

func viewList(s domain.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Directory: " + s.Path))
	b.WriteByte('\n')

	if len(s.Entries) == 0 {
		b.WriteString(entryStyle.Render("No items found"))
		b.WriteByte('\n')
	}

	end := s.Scroll + s.VisibleRows
	if end > len(s.Entries) {
		end = len(s.Entries)
	}
	for i := s.Scroll; i < end; i++ {
		e := s.Entries[i]
		line := " " + e.Name
		if e.IsDir {
			line = "[DIR] " + e.Name
		}
		style := entryStyle
		if e.IsDir {
			style = dirStyle
		}
		if i == s.Selected {
			style = selectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("A: Play/Enter  B: Back  L1/R1: Jump"))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("Select: Exit  Guide: Lock"))
	b.WriteByte('\n')
	return b.String()
}

func viewPlaying(s domain.Snapshot) string {
	var b strings.Builder
	title := "Now Playing..."
	if s.Paused {
		title = "Paused"
	}
	b.WriteString(labelStyle.Render(title))
	b.WriteString("\n\n")

	writeField(&b, "Game", s.Meta.Game)
	writeField(&b, "Title", s.Meta.Title)
	writeField(&b, "Artist", s.Meta.Artist)
	writeField(&b, "Length", stripFraction(s.Meta.LengthText))
	writeField(&b, "Elapsed", formatElapsed(s.Elapsed))
	writeField(&b, "Year", s.Meta.Year)
	writeField(&b, "GSF By", s.Meta.GSFBy)
	writeField(&b, "Copyright", s.Meta.Copyright)

	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("Loop: ") + valueStyle.Render(s.Loop.String()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("B: Back  L2/R2: Prev/Next  Y: Loop  Start: Pause"))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("Select: Exit  Guide: Lock"))
	b.WriteByte('\n')
	return b.String()
}

// writeField renders one metadata line, skipping empty values
func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(labelStyle.Render(label+": ") + valueStyle.Render(value))
	b.WriteByte('\n')
}

// formatElapsed renders whole seconds as mm:ss
func formatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// stripFraction drops the fractional part of a length tag for display
func stripFraction(length string) string {
	if dot := strings.IndexByte(length, '.'); dot >= 0 {
		return length[:dot]
	}
	return length
}
