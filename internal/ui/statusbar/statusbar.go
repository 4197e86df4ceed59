package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow/taskflow/internal/types"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

// StatusBar is the bar at the bottom of the TUI: mode badge, key hints
// and the current grouping/search context.
type StatusBar struct {
	mode   types.Mode
	info   string
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar
func New(mode types.Mode, info string, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		info:   info,
		width:  width,
		styles: styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := GetHints(sb.mode)
	hintsRendered := sb.styles.StatusHint.Render(hints)

	segments := []string{modeBadge}
	separator := sb.styles.StatusHint.Render(" │ ")
	if sb.info != "" {
		segments = append(segments, separator, sb.styles.StatusInfo.Render(sb.info))
	}
	if hints != "" {
		segments = append(segments, separator, hintsRendered)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, segments...)
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
