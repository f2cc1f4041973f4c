package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"flourish/internal/geom"
	"flourish/internal/render"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		cmd := m.onFrame(msg)
		if m.showInfo {
			m.refreshInfo()
		}
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2)
		}
		cmd := m.resize()
		return m, cmd
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.ta.Value())
				if text == "" {
					m.status = "paste: empty"
					return m, nil
				}
				c, err := geom.ParseText(text)
				if err != nil {
					m.status = "paste error: " + err.Error()
					return m, nil
				}
				m.pasteMode = false
				m.ta.Blur()
				m.selPath = ""
				cmd := m.setCurve(c)
				return m, cmd
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.renderer.Cancel()
			return m, tea.Quit
		case "r":
			cmd := m.render()
			return m, cmd
		case "a":
			m.cfg.Animated = !m.cfg.Animated
			cmd := m.render()
			return m, cmd
		case "m":
			m.cfg.ShowMarker = !m.cfg.ShowMarker
			m.status = fmt.Sprintf("marker: %v", m.cfg.ShowMarker)
		case "k":
			m.cfg.KeepMarker = !m.cfg.KeepMarker
			m.status = fmt.Sprintf("keep marker: %v", m.cfg.KeepMarker)
		case "c":
			m.renderer.Cancel()
			m.status = "animation cancelled"
		case "+", "=":
			m.cfg.BatchSize = min(m.batchSize()*2, 1<<16)
			m.status = fmt.Sprintf("batch: %d segments per frame", m.cfg.BatchSize)
		case "-", "_":
			m.cfg.BatchSize = max(m.batchSize()/2, 1)
			m.status = fmt.Sprintf("batch: %d segments per frame", m.cfg.BatchSize)
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2)
			}
			cmd := m.resize()
			return m, cmd
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "i":
			m.showInfo = !m.showInfo
			if m.showInfo {
				m.refreshInfo()
			}
		case "e":
			m.export(".png")
		case "s":
			m.export(".svg")
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					cmd := m.loadPath(it.path)
					return m, cmd
				}
			}
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) batchSize() int {
	if m.cfg.BatchSize <= 0 {
		return render.DefaultBatchSize
	}
	return m.cfg.BatchSize
}
