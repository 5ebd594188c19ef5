package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/config/colors"
	"github.com/thenoetrevino/dealflow/internal/models"
)

var (
	// Board styles
	ColumnStyle lipgloss.Style
	CardStyle   lipgloss.Style
	ColumnWidth = 28

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Owner:", "Access:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For column headers

	// Access badges
	ReadBadgeStyle lipgloss.Style
	FullBadgeStyle lipgloss.Style

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(scheme colors.ColorScheme) {
	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.CardBorder)).
		Padding(0, 1).
		Width(ColumnWidth - 4)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Accent)).
		Bold(true)

	ReadBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.ReadBadge)).
		Padding(0, 1)

	FullBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.FullBadge)).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.InfoFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.ErrorFg)).
		Background(lipgloss.Color(scheme.ErrorBg)).
		Padding(0, 1)
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderAccessBadge renders "[read]" or "[full]"; none renders nothing
func RenderAccessBadge(level models.AccessLevel) string {
	switch level {
	case models.AccessFull:
		return FullBadgeStyle.Render("[" + level.String() + "]")
	case models.AccessRead:
		return ReadBadgeStyle.Render("[" + level.String() + "]")
	default:
		return ""
	}
}

// RenderPipelineLine renders one pipeline for a list
// Format: "mainPipeline  Main Pipeline [read]"
func RenderPipelineLine(p *models.Pipeline, level models.AccessLevel) string {
	return fmt.Sprintf("%s  %s %s",
		LabelStyle.Render(string(p.ID)),
		ValueStyle.Render(p.Name),
		RenderAccessBadge(level))
}

// RenderCompanyCard renders a company as a bordered card
func RenderCompanyCard(c models.Company) string {
	lines := []string{TitleStyle.Render(c.Name), SubtitleStyle.Render(string(c.ID))}
	if c.Description != "" {
		lines = append(lines, ValueStyle.Render(c.Description))
	}
	if c.Notes != "" {
		lines = append(lines, SubtitleStyle.Render("✎ "+c.Notes))
	}
	return CardStyle.Render(strings.Join(lines, "\n"))
}

// RenderColumn renders a column header followed by its cards
func RenderColumn(col board.ColumnView) string {
	parts := []string{SectionStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Companies)))}
	if len(col.Companies) == 0 {
		parts = append(parts, SubtitleStyle.Render("empty"))
	}
	for _, c := range col.Companies {
		parts = append(parts, RenderCompanyCard(c))
	}
	return ColumnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// RenderBoard renders a pipeline header with its access badge and the
// columns side by side
func RenderBoard(view board.BoardView) string {
	header := fmt.Sprintf("%s %s\n%s %s",
		TitleStyle.Render(view.Pipeline.Name),
		RenderAccessBadge(view.Access),
		LabelStyle.Render("Owner:"),
		ValueStyle.Render(string(view.Pipeline.OwnerUserID)))

	if len(view.Columns) == 0 {
		return header + "\n" + SubtitleStyle.Render("no columns")
	}

	columns := make([]string, len(view.Columns))
	for i, col := range view.Columns {
		columns[i] = RenderColumn(col)
	}
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
