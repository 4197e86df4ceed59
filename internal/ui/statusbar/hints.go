package statusbar

import "github.com/taskflow/taskflow/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: columns  j/k: tasks  g: group by  /: search  m: move  x: delete  q: quit"
	case types.ModeSearch:
		return "Type to filter  Enter: keep  Esc: clear"
	case types.ModeMove:
		return "j/k: choose target  Enter: drop  Esc: cancel"
	default:
		return ""
	}
}
