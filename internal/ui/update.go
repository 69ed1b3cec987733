package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateRootMsg(msg rootMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		m.backendErr = msg.err.Error()
		return m, nil
	}
	m.root = msg.info
	m.backendErr = ""
	m.status = "Loading remotes..."
	m.startLoading()
	return m, loadRemotesCmd(m.client, true)
}

func (m Model) updateRemotesMsg(msg remotesMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		m.status = fmt.Sprintf("Error loading remotes: %v", msg.err)
		m.syncTable()
		return m, nil
	}
	m.remotes = msg.repos.Repositories
	m.focus = FocusRemotes
	m.clearFilter()
	if msg.auto {
		if name, ok := resolveRemote(m.remotes); ok {
			return m, m.selectRemote(name)
		}
		m.status = fmt.Sprintf("Loaded %d remotes; none are currently available", len(m.remotes))
		m.syncTable()
		return m, nil
	}
	m.status = fmt.Sprintf("Loaded %d remotes", len(m.remotes))
	m.syncTable()
	return m, nil
}

func (m Model) updatePackagesMsg(msg packagesMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		m.status = fmt.Sprintf("Error loading packages: %v", msg.err)
		m.syncTable()
		return m, nil
	}
	if !m.hasSelectedRemote || m.selectedRemote != msg.remote {
		return m, nil
	}
	m.packages = msg.page.Packages
	m.packagesTotal = msg.page.Total
	m.packagesPage = msg.page.Page
	m.searchQuery = msg.query
	m.searchInput.SetValue(msg.query)
	m.focus = FocusPackages
	m.status = m.packagesLoadedStatus()
	m.clearFilter()
	m.syncTable()
	return m, nil
}

func (m Model) updateVersionsMsg(msg versionsMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		m.status = fmt.Sprintf("Error loading versions: %v", msg.err)
		m.syncTable()
		return m, nil
	}
	if !m.hasSelectedPackage || m.selectedRemote != msg.remote || m.selectedPackage != msg.name {
		return m, nil
	}
	m.versions = msg.page.Versions
	m.focus = FocusVersions
	m.status = fmt.Sprintf("Loaded %d versions for %s", len(msg.page.Versions), msg.name)
	m.clearFilter()
	m.syncTable()
	return m, nil
}

func (m Model) updateBinariesMsg(msg binariesMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		m.status = fmt.Sprintf("Error loading binaries: %v", msg.err)
		m.syncTable()
		return m, nil
	}
	if !m.hasSelectedVersion || m.selectedRemote != msg.remote ||
		m.selectedPackage != msg.name || m.selectedVersion != msg.version {
		return m, nil
	}
	m.binaries = msg.page
	m.focus = FocusBinaries
	if msg.page.RecipeOnly() {
		m.status = fmt.Sprintf("%s/%s is recipe-only: no binaries have been built", msg.name, msg.version)
	} else {
		m.status = fmt.Sprintf("Loaded %d binaries", len(msg.page.Binaries))
	}
	m.clearFilter()
	m.syncTable()
	return m, nil
}

func (m Model) updateOptionsMsg(msg optionsMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		// The filter panel stays usable with whatever options are known.
		m.status = fmt.Sprintf("Error loading filter options: %v", msg.err)
		return m, nil
	}
	if !m.hasSelectedVersion || m.selectedRemote != msg.remote ||
		m.selectedPackage != msg.name || m.selectedVersion != msg.version {
		return m, nil
	}
	m.options = msg.page.Catalog()
	return m, nil
}

func (m Model) updateConfigurationMsg(msg configurationMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		m.status = fmt.Sprintf("Error loading configuration: %v", msg.err)
		m.syncTable()
		return m, nil
	}
	if !m.hasSelectedBinary || m.selectedRemote != msg.remote ||
		m.selectedPackage != msg.name || m.selectedVersion != msg.version ||
		m.selectedBinary.PackageID != msg.packageID {
		return m, nil
	}
	m.configuration = msg.detail
	m.hasConfiguration = true
	m.focus = FocusConfiguration
	m.status = fmt.Sprintf("Loaded configuration for %s", shortID(msg.packageID))
	return m, nil
}
