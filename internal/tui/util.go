package tui

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout returns the canvas size in cells for the current window, matching
// what View draws.
func (m Model) layout() (w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = contentWidth
	if m.showSidebar {
		w -= sidebarWidth + 1
	}
	return max(8, w), contentHeight
}
