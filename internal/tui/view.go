package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flourish/internal/render"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	mapWidth, mapHeight := m.layout()

	header := titleStyle.Render(" flourish ─ curve renderer ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showInfo:
		m.tbl.SetWidth(min(mapWidth, 60) - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		box := boxStyle.Width(min(mapWidth, 60)).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	case m.canvas != nil:
		mapView = strings.Join(m.canvas.lines(m.strokeColor()), "\n")
	default:
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, dimStyle.Render("no curve loaded"))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	progress := ""
	if s := m.session; s != nil && s.State() == render.Running {
		progress = dimStyle.Render(fmt.Sprintf("  %3.0f%%  ", s.Progress()*100))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(progress))
	right := lipgloss.Place(spacerW+lipgloss.Width(progress), 1, lipgloss.Right, lipgloss.Center, progress)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"r redraw",
		"a animate",
		"m marker",
		"+/- batch",
		"c cancel",
		"Tab files",
		"p paste",
		"i info",
		"e png",
		"s svg",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
