package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roknus/conan-ui/pkg/apiclient"
	"github.com/roknus/conan-ui/pkg/conan"
)

// filterDim indexes the binary filter panel dimensions in display order:
// settings first, reference dimensions after.
type filterDim int

const (
	dimOS filterDim = iota
	dimArch
	dimCompiler
	dimCompilerVersion
	dimBuildType
	dimRevision
	dimUser
	dimChannel
	dimCount
)

func filterLabel(dim filterDim) string {
	switch dim {
	case dimOS:
		return conan.SettingOS
	case dimArch:
		return conan.SettingArch
	case dimCompiler:
		return conan.SettingCompiler
	case dimCompilerVersion:
		return conan.SettingCompilerVersion
	case dimBuildType:
		return conan.SettingBuildType
	case dimRevision:
		return "revision"
	case dimUser:
		return "user"
	case dimChannel:
		return "channel"
	default:
		return ""
	}
}

func (m Model) filterValue(dim filterDim) string {
	switch dim {
	case dimOS:
		return m.filter.OS
	case dimArch:
		return m.filter.Arch
	case dimCompiler:
		return m.filter.Compiler
	case dimCompilerVersion:
		return m.filter.CompilerVersion
	case dimBuildType:
		return m.filter.BuildType
	case dimRevision:
		return m.filter.RecipeRevision
	case dimUser:
		return m.filter.User
	case dimChannel:
		return m.filter.Channel
	default:
		return ""
	}
}

// filterValues lists the selectable values for a dimension. Settings
// dimensions come from the unfiltered option catalog, reference
// dimensions from the revision info of the loaded binaries page.
// Compiler versions follow the currently selected compiler.
func (m Model) filterValues(dim filterDim) []string {
	switch dim {
	case dimOS:
		return m.options.Options.OS
	case dimArch:
		return m.options.Options.Arch
	case dimCompiler:
		return m.options.Options.Compiler
	case dimCompilerVersion:
		return m.options.VersionsFor(m.filter.Compiler)
	case dimBuildType:
		return m.options.Options.BuildType
	case dimRevision:
		return m.binaries.RevisionInfo.RecipeRevisions
	case dimUser:
		return m.binaries.RevisionInfo.Users
	case dimChannel:
		return m.binaries.RevisionInfo.Channels
	default:
		return nil
	}
}

// cycleFilter steps the focused dimension through its values, with the
// unfiltered state between the last and first value.
func (m *Model) cycleFilter(delta int) tea.Cmd {
	values := m.filterValues(m.filterFocus)
	if len(values) == 0 {
		return nil
	}
	pos := 0
	current := m.filterValue(m.filterFocus)
	for i, v := range values {
		if v == current {
			pos = i + 1
			break
		}
	}
	pos = (pos + delta + len(values) + 1) % (len(values) + 1)
	next := ""
	if pos > 0 {
		next = values[pos-1]
	}
	return m.applyFilter(m.filterFocus, next)
}

// applyFilter sets one dimension and triggers exactly one binaries
// refetch with the full active filter set. A no-op change fetches
// nothing.
func (m *Model) applyFilter(dim filterDim, value string) tea.Cmd {
	if m.filterValue(dim) == value {
		return nil
	}
	switch dim {
	case dimOS:
		m.filter.OS = value
	case dimArch:
		m.filter.Arch = value
	case dimCompiler:
		m.filter.SetCompiler(value)
	case dimCompilerVersion:
		m.filter.CompilerVersion = value
	case dimBuildType:
		m.filter.BuildType = value
	case dimRevision:
		m.filter.RecipeRevision = value
	case dimUser:
		m.filter.User = value
	case dimChannel:
		m.filter.Channel = value
	default:
		return nil
	}
	m.status = "Filtering binaries..."
	m.startLoading()
	return loadBinariesCmd(m.client, m.selectedRemote, m.selectedPackage, m.selectedVersion, m.filter, false)
}

func (m *Model) clearAllFilters() tea.Cmd {
	if m.filter.IsZero() {
		return nil
	}
	m.filter = conan.BinaryFilter{}
	m.status = "Cleared binary filters"
	m.startLoading()
	return loadBinariesCmd(m.client, m.selectedRemote, m.selectedPackage, m.selectedVersion, m.filter, false)
}

func configQueryForBinary(b conan.Binary) apiclient.ConfigurationQuery {
	return apiclient.ConfigurationQuery{
		User:           deref(b.User),
		Channel:        deref(b.Channel),
		PackageID:      b.PackageID,
		RecipeRevision: deref(b.RecipeRevision),
	}
}
