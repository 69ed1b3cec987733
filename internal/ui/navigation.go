package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roknus/conan-ui/pkg/conan"
)

func (m *Model) handleEnter() tea.Cmd {
	list := m.listView()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(list.indices) {
		return nil
	}
	index := list.indices[cursor]

	switch m.focus {
	case FocusRemotes:
		if index < 0 || index >= len(m.remotes) {
			return nil
		}
		selected := m.remotes[index]
		if !selected.Available {
			m.status = fmt.Sprintf("Remote %s is not available", selected.Name)
			return nil
		}
		return m.selectRemote(selected.Name)
	case FocusPackages:
		if index < 0 || index >= len(m.packages) {
			return nil
		}
		selected := m.packages[index]
		m.selectedPackage = selected.Name
		m.hasSelectedPackage = true
		m.versions = nil
		m.selectedVersion = ""
		m.hasSelectedVersion = false
		m.focus = FocusVersions
		m.status = fmt.Sprintf("Loading versions for %s...", selected.Name)
		m.clearFilter()
		m.syncTable()
		m.startLoading()
		return loadVersionsCmd(m.client, m.selectedRemote, selected.Name, false)
	case FocusVersions:
		if index < 0 || index >= len(m.versions) {
			return nil
		}
		selected := m.versions[index]
		m.selectedVersion = selected.Version
		m.hasSelectedVersion = true
		m.binaries = conan.BinariesPage{}
		m.options = conan.OptionsCatalog{}
		m.filter = conan.BinaryFilter{}
		m.filterFocus = dimOS
		m.focus = FocusBinaries
		m.status = fmt.Sprintf("Loading binaries for %s/%s...", m.selectedPackage, selected.Version)
		m.clearFilter()
		m.syncTable()
		m.startLoading()
		m.startLoading()
		return tea.Batch(
			loadFilterOptionsCmd(m.client, m.selectedRemote, m.selectedPackage, selected.Version, false),
			loadBinariesCmd(m.client, m.selectedRemote, m.selectedPackage, selected.Version, m.filter, false),
		)
	case FocusBinaries:
		if index < 0 || index >= len(m.binaries.Binaries) {
			return nil
		}
		selected := m.binaries.Binaries[index]
		if selected.IsRecipeOnly() {
			m.status = "Recipe-only entry: no binary package to inspect"
			return nil
		}
		m.selectedBinary = selected
		m.hasSelectedBinary = true
		m.hasConfiguration = false
		m.focus = FocusConfiguration
		m.status = fmt.Sprintf("Loading configuration for %s...", shortID(selected.PackageID))
		m.clearFilter()
		m.syncTable()
		m.startLoading()
		return loadConfigurationCmd(m.client, m.selectedRemote, m.selectedPackage, m.selectedVersion,
			configQueryForBinary(selected), false)
	default:
		return nil
	}
}

func (m *Model) handleEscape() tea.Cmd {
	switch m.focus {
	case FocusConfiguration:
		m.configuration = conan.ConfigurationDetail{}
		m.hasConfiguration = false
		m.selectedBinary = conan.Binary{}
		m.hasSelectedBinary = false
		m.focus = FocusBinaries
		m.clearFilter()
		m.syncTable()
		return nil
	case FocusBinaries:
		m.binaries = conan.BinariesPage{}
		m.options = conan.OptionsCatalog{}
		m.filter = conan.BinaryFilter{}
		m.selectedVersion = ""
		m.hasSelectedVersion = false
		m.focus = FocusVersions
		m.clearFilter()
		m.syncTable()
		return nil
	case FocusVersions:
		m.versions = nil
		m.selectedPackage = ""
		m.hasSelectedPackage = false
		m.focus = FocusPackages
		m.clearFilter()
		m.syncTable()
		return nil
	case FocusPackages:
		// Going back up keeps the remote list manual; no auto-select.
		m.packages = nil
		m.packagesTotal = 0
		m.searchQuery = ""
		m.searchInput.SetValue("")
		m.selectedRemote = ""
		m.hasSelectedRemote = false
		m.focus = FocusRemotes
		m.clearFilter()
		m.syncTable()
		if len(m.remotes) == 0 {
			m.status = "Loading remotes..."
			m.startLoading()
			return loadRemotesCmd(m.client, false)
		}
		return nil
	default:
		m.clearFilter()
		m.syncTable()
		return nil
	}
}

func (m *Model) selectRemote(name string) tea.Cmd {
	m.selectedRemote = name
	m.hasSelectedRemote = true
	m.packages = nil
	m.packagesTotal = 0
	m.packagesPage = 1
	m.searchQuery = ""
	m.searchInput.SetValue("")
	m.selectedPackage = ""
	m.hasSelectedPackage = false
	m.focus = FocusPackages
	m.status = fmt.Sprintf("Loading packages from %s...", name)
	m.clearFilter()
	m.syncTable()
	m.startLoading()
	return loadPackagesCmd(m.client, name, "", 1, false)
}

func (m *Model) loadPackagesPage(page int) tea.Cmd {
	if page < 1 || page == m.packagesPage {
		return nil
	}
	if (page-1)*packagesPerPage >= m.packagesTotal {
		return nil
	}
	m.status = fmt.Sprintf("Loading page %d...", page)
	m.startLoading()
	return loadPackagesCmd(m.client, m.selectedRemote, m.searchQuery, page, false)
}

// refreshCurrent refetches the data behind the current screen, asking the
// backend to bypass its caches.
func (m *Model) refreshCurrent() tea.Cmd {
	switch m.focus {
	case FocusRemotes:
		m.status = "Refreshing remotes..."
		m.startLoading()
		return loadRemotesCmd(m.client, false)
	case FocusPackages:
		m.status = fmt.Sprintf("Refreshing packages from %s...", m.selectedRemote)
		m.startLoading()
		return loadPackagesCmd(m.client, m.selectedRemote, m.searchQuery, m.packagesPage, true)
	case FocusVersions:
		m.status = fmt.Sprintf("Refreshing versions for %s...", m.selectedPackage)
		m.startLoading()
		return loadVersionsCmd(m.client, m.selectedRemote, m.selectedPackage, true)
	case FocusBinaries:
		m.status = fmt.Sprintf("Refreshing binaries for %s/%s...", m.selectedPackage, m.selectedVersion)
		m.startLoading()
		m.startLoading()
		return tea.Batch(
			loadFilterOptionsCmd(m.client, m.selectedRemote, m.selectedPackage, m.selectedVersion, true),
			loadBinariesCmd(m.client, m.selectedRemote, m.selectedPackage, m.selectedVersion, m.filter, true),
		)
	case FocusConfiguration:
		if !m.hasSelectedBinary {
			return nil
		}
		m.status = fmt.Sprintf("Refreshing configuration for %s...", shortID(m.selectedBinary.PackageID))
		m.startLoading()
		return loadConfigurationCmd(m.client, m.selectedRemote, m.selectedPackage, m.selectedVersion,
			configQueryForBinary(m.selectedBinary), true)
	default:
		return nil
	}
}

func (m *Model) clearFilter() {
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.filterActive = false
}

func (m *Model) startLoading() {
	m.loadingCount++
}

func (m *Model) stopLoading() {
	if m.loadingCount <= 0 {
		return
	}
	m.loadingCount--
}

func (m Model) isLoading() bool {
	return m.loadingCount > 0
}

func (m Model) packagesLoadedStatus() string {
	pages := (m.packagesTotal + packagesPerPage - 1) / packagesPerPage
	if pages < 1 {
		pages = 1
	}
	status := fmt.Sprintf("Loaded %d of %d packages (page %d/%d)", len(m.packages), m.packagesTotal, m.packagesPage, pages)
	if m.searchQuery != "" {
		status += fmt.Sprintf(" matching %q", m.searchQuery)
	}
	return status
}

func (m Model) emptyBodyMessage() string {
	if m.isLoading() {
		return "Loading, waiting for server response..."
	}

	filter := strings.TrimSpace(m.filterInput.Value())
	if filter != "" {
		return fmt.Sprintf("No results for filter %q", filter)
	}

	switch m.focus {
	case FocusRemotes:
		return "No remotes configured."
	case FocusPackages:
		if m.searchQuery != "" {
			return fmt.Sprintf("No packages match %q on %s.", m.searchQuery, m.selectedRemote)
		}
		return fmt.Sprintf("No packages found on %s.", m.selectedRemote)
	case FocusVersions:
		return fmt.Sprintf("No versions found for %s.", m.selectedPackage)
	case FocusBinaries:
		return fmt.Sprintf("No binaries match the current filters for %s/%s.", m.selectedPackage, m.selectedVersion)
	default:
		return "No data to display."
	}
}
