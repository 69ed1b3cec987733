// Package ui implements the interactive browser for the conan-ui backend.
//
// The model walks the resource hierarchy remote -> package -> version ->
// binary -> configuration, one focus level per screen. Data loads run as
// bubbletea commands against pkg/apiclient; a later navigation supersedes
// an earlier pending result, so update handlers drop messages whose
// selection context no longer matches.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/roknus/conan-ui/pkg/apiclient"
	"github.com/roknus/conan-ui/pkg/conan"
)

// Focus identifies the level of the drill-down currently on screen.
type Focus int

const (
	FocusRemotes Focus = iota
	FocusPackages
	FocusVersions
	FocusBinaries
	FocusConfiguration
)

const (
	defaultTableHeight = 10
	minTableHeight     = 3
	maxFilterWidth     = 40
	tableChromeLines   = 2
	filterPanelLines   = 2
	defaultRenderWidth = 80
	packagesPerPage    = 20
)

var (
	colorPrimary  = lipgloss.Color("62")
	colorMuted    = lipgloss.Color("241")
	colorAccent   = lipgloss.Color("204")
	colorSelected = lipgloss.Color("229")
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	filterStyle = lipgloss.NewStyle().Foreground(colorAccent)
	activeStyle = lipgloss.NewStyle().Foreground(colorSelected)
	emptyStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

type Model struct {
	width  int
	height int

	status string
	focus  Focus

	client *apiclient.Client
	logger *log.Logger

	// backendErr replaces the whole UI with a configuration-error screen
	// until a retry succeeds.
	backendErr string
	root       conan.RootInfo

	remotes []conan.Remote

	selectedRemote    string
	hasSelectedRemote bool

	packages      []conan.PackageSummary
	packagesTotal int
	packagesPage  int
	searchQuery   string

	selectedPackage    string
	hasSelectedPackage bool

	versions []conan.PackageVersion

	selectedVersion    string
	hasSelectedVersion bool

	binaries    conan.BinariesPage
	options     conan.OptionsCatalog
	filter      conan.BinaryFilter
	filterFocus filterDim

	selectedBinary    conan.Binary
	hasSelectedBinary bool

	configuration    conan.ConfigurationDetail
	hasConfiguration bool

	filterActive bool
	filterInput  textinput.Model
	searchActive bool
	searchInput  textinput.Model

	table        table.Model
	tableColumns []table.Column

	spin         spinner.Model
	loadingCount int
}

// NewModel builds the initial model. The first backend probe is fired by
// Init; until it answers, the view shows a connecting status.
func NewModel(client *apiclient.Client, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"
	filter.CharLimit = 64
	filter.Blur()

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "package name"
	search.CharLimit = 128
	search.Blur()

	tbl := table.New()
	tbl.SetStyles(tableStyles())
	tbl.SetHeight(defaultTableHeight)
	tbl.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		status:       fmt.Sprintf("Connecting to %s...", client.BaseURL()),
		client:       client,
		logger:       logger,
		packagesPage: 1,
		filterInput:  filter,
		searchInput:  search,
		table:        tbl,
		spin:         sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadRootCmd(m.client))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.backendErr != "" {
			return m.handleBackendErrorKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncTable()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case rootMsg:
		return m.updateRootMsg(msg)
	case remotesMsg:
		return m.updateRemotesMsg(msg)
	case packagesMsg:
		return m.updatePackagesMsg(msg)
	case versionsMsg:
		return m.updateVersionsMsg(msg)
	case binariesMsg:
		return m.updateBinariesMsg(msg)
	case optionsMsg:
		return m.updateOptionsMsg(msg)
	case configurationMsg:
		return m.updateConfigurationMsg(msg)
	}
	return m, nil
}

// resolveRemote picks the remote to auto-select on entry: the available
// default first, then the first available one. ok is false when no remote
// is reachable and the selection list must be shown instead.
func resolveRemote(remotes []conan.Remote) (string, bool) {
	for _, r := range remotes {
		if r.IsDefault && r.Available {
			return r.Name, true
		}
	}
	for _, r := range remotes {
		if r.Available {
			return r.Name, true
		}
	}
	return "", false
}

func focusLabel(focus Focus) string {
	switch focus {
	case FocusRemotes:
		return "Remotes"
	case FocusPackages:
		return "Packages"
	case FocusVersions:
		return "Versions"
	case FocusBinaries:
		return "Binaries"
	case FocusConfiguration:
		return "Configuration"
	default:
		return "Remotes"
	}
}

// breadcrumb mirrors the route hierarchy remote/package/version/binary.
func (m Model) breadcrumb() string {
	if !m.hasSelectedRemote {
		return ""
	}
	parts := []string{m.selectedRemote}
	if m.hasSelectedPackage {
		parts = append(parts, m.selectedPackage)
	}
	if m.hasSelectedVersion {
		parts = append(parts, m.selectedVersion)
	}
	if m.focus == FocusConfiguration && m.hasSelectedBinary {
		parts = append(parts, shortID(m.selectedBinary.PackageID))
	}
	return strings.Join(parts, "/")
}
