package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mherran/shopcal/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle          lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	TimeColumnStyle     lipgloss.Style

	JobStyle          lipgloss.Style
	JobPastStyle      lipgloss.Style
	JobCurrentStyle   lipgloss.Style
	ExternalStyle     lipgloss.Style
	ExternalPastStyle lipgloss.Style
	LockedStyle       lipgloss.Style
	DragSourceStyle   lipgloss.Style
	DropTargetStyle   lipgloss.Style

	EmptyCellStyle lipgloss.Style
	CursorStyle    lipgloss.Style

	SummaryDayStyle      lipgloss.Style
	SummaryDayBusyStyle  lipgloss.Style
	SummaryDayTodayStyle lipgloss.Style

	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	ModalStyle            lipgloss.Style
	ModalTitleStyle       lipgloss.Style
	ModalLabelStyle       lipgloss.Style
	ModalValueStyle       lipgloss.Style
	ModalLockedStyle      lipgloss.Style
	ModalHintStyle        lipgloss.Style
	ToggleOnStyle         lipgloss.Style
	ToggleOffStyle        lipgloss.Style
	ModalInputTextStyle   lipgloss.Style
	ModalInputCursorStyle lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style
}

// NewStyles builds the style set from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		DayHeaderStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Bold(true),
		DayHeaderTodayStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Underline(true),
		TimeColumnStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),

		JobStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.JobBg),
		JobPastStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.JobPastBg),
		JobCurrentStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.JobBg).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(p.Current),
		ExternalStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.ExternalBg),
		ExternalPastStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.ExternalPastBg),
		LockedStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.BgHighlight).
			Italic(true),
		DragSourceStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.BgHighlight).
			Faint(true),
		DropTargetStyle: lipgloss.NewStyle().
			Foreground(p.TextOnWarning).
			Background(p.Warning),

		EmptyCellStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		CursorStyle: lipgloss.NewStyle().
			Background(p.BgSelection),

		SummaryDayStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		SummaryDayBusyStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Bold(true),
		SummaryDayTodayStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight),
		WarningStyle: lipgloss.NewStyle().
			Foreground(p.TextOnWarning).
			Background(p.Warning),
		HelpStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),

		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		ModalTitleStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		ModalLabelStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		ModalValueStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		ModalLockedStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Italic(true),
		ModalHintStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		ToggleOnStyle: lipgloss.NewStyle().
			Foreground(p.TextOnAccent).
			Background(p.Accent),
		ToggleOffStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		ModalInputTextStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		ModalInputCursorStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
		ModalPlaceholderStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
	}
}

// blockStyle picks the style for an item block.
func (s *Styles) blockStyle(kind blockKind) lipgloss.Style {
	switch kind {
	case blockJob:
		return s.JobStyle
	case blockJobPast:
		return s.JobPastStyle
	case blockJobCurrent:
		return s.JobCurrentStyle
	case blockExternal:
		return s.ExternalStyle
	case blockExternalPast:
		return s.ExternalPastStyle
	case blockLocked:
		return s.LockedStyle
	default:
		return s.EmptyCellStyle
	}
}

type blockKind int

const (
	blockEmpty blockKind = iota
	blockJob
	blockJobPast
	blockJobCurrent
	blockExternal
	blockExternalPast
	blockLocked
)
