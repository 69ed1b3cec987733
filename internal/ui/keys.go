package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		return m.handleFilterInputKey(msg)
	}
	if m.searchActive {
		return m.handleSearchInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		return m, m.handleEscape()
	case "enter":
		return m, m.handleEnter()
	case "r":
		return m, m.refreshCurrent()
	case "/":
		if m.focus != FocusConfiguration {
			m.filterActive = true
			m.filterInput.Focus()
			m.filterInput.CursorEnd()
		}
		return m, nil
	case "s":
		if m.focus == FocusPackages {
			m.searchActive = true
			m.searchInput.Focus()
			m.searchInput.CursorEnd()
			return m, nil
		}
	case "left", "h":
		if m.focus == FocusPackages {
			return m, m.loadPackagesPage(m.packagesPage - 1)
		}
		if m.focus == FocusBinaries {
			return m, m.cycleFilter(-1)
		}
	case "right", "l":
		if m.focus == FocusPackages {
			return m, m.loadPackagesPage(m.packagesPage + 1)
		}
		if m.focus == FocusBinaries {
			return m, m.cycleFilter(1)
		}
	case "tab":
		if m.focus == FocusBinaries {
			m.filterFocus = (m.filterFocus + 1) % dimCount
			return m, nil
		}
	case "shift+tab":
		if m.focus == FocusBinaries {
			m.filterFocus = (m.filterFocus + dimCount - 1) % dimCount
			return m, nil
		}
	case "backspace":
		if m.focus == FocusBinaries {
			return m, m.applyFilter(m.filterFocus, "")
		}
	case "x":
		if m.focus == FocusBinaries {
			return m, m.clearAllFilters()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleFilterInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearFilter()
		m.syncTable()
		return m, nil
	case "enter":
		m.filterActive = false
		m.filterInput.Blur()
		m.syncTable()
		return m, nil
	}
	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.table.SetCursor(0)
		m.syncTable()
	}
	return m, cmd
}

// handleSearchInputKey drives the server-side package search box. Enter
// commits the query and refetches page one; esc restores the last
// committed query.
func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchActive = false
		m.searchInput.Blur()
		m.searchInput.SetValue(m.searchQuery)
		return m, nil
	case "enter":
		m.searchActive = false
		m.searchInput.Blur()
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			m.status = fmt.Sprintf("Loading packages from %s...", m.selectedRemote)
		} else {
			m.status = fmt.Sprintf("Searching %s for %q...", m.selectedRemote, query)
		}
		m.startLoading()
		return m, loadPackagesCmd(m.client, m.selectedRemote, query, 1, false)
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleBackendErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.backendErr = ""
		m.status = fmt.Sprintf("Connecting to %s...", m.client.BaseURL())
		m.startLoading()
		return m, loadRootCmd(m.client)
	}
	return m, nil
}
