package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"flourish/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no curve files in current directory"
	}
}

// loadPath reads a curve file and draws it when the canvas exists.
func (m *Model) loadPath(p string) tea.Cmd {
	c, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return nil
	}
	m.selPath = p
	cmd := m.setCurve(c)
	if m.canvas == nil {
		m.status = fmt.Sprintf("loaded %s: %d points", filepath.Base(p), len(c.Points))
	} else {
		m.status = "loaded " + filepath.Base(p) + ": " + m.status
	}
	return cmd
}

func (m *Model) setCurve(c geom.Curve) tea.Cmd {
	m.curve = c
	m.loaded = true
	if m.showInfo {
		m.refreshInfo()
	}
	return m.render()
}
