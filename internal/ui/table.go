package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/roknus/conan-ui/pkg/conan"
)

type listView struct {
	rows    [][]string
	indices []int
}

func (m Model) listView() listView {
	filter := m.filterInput.Value()
	switch m.focus {
	case FocusRemotes:
		return filterRows(remoteRows(m.remotes), filter)
	case FocusPackages:
		return filterRows(packageRows(m.packages), filter)
	case FocusVersions:
		return filterRows(versionRows(m.versions), filter)
	case FocusBinaries:
		return filterRows(binaryRows(m.binaries.Binaries), filter)
	default:
		return listView{}
	}
}

func remoteRows(remotes []conan.Remote) [][]string {
	if len(remotes) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(remotes))
	for _, r := range remotes {
		status := "unavailable"
		if r.Available {
			status = "available"
		}
		isDefault := ""
		if r.IsDefault {
			isDefault = "yes"
		}
		rows = append(rows, []string{r.Name, r.URL, status, isDefault})
	}
	return rows
}

func packageRows(packages []conan.PackageSummary) [][]string {
	if len(packages) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(packages))
	for _, p := range packages {
		rows = append(rows, []string{p.Name, p.LatestVersion, strconv.Itoa(p.TotalVersions)})
	}
	return rows
}

func versionRows(versions []conan.PackageVersion) [][]string {
	if len(versions) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, []string{v.Version, strconv.Itoa(v.TotalVariants), variantSummary(v.Variants)})
	}
	return rows
}

// variantSummary lists the distinct user/channel scopes of a version,
// "-" when every variant is unscoped.
func variantSummary(variants []conan.Variant) string {
	seen := map[string]bool{}
	var scopes []string
	for _, v := range variants {
		if v.User == nil || *v.User == "" {
			continue
		}
		scope := *v.User
		if v.Channel != nil && *v.Channel != "" {
			scope += "/" + *v.Channel
		}
		if !seen[scope] {
			seen[scope] = true
			scopes = append(scopes, scope)
		}
	}
	if len(scopes) == 0 {
		return "-"
	}
	return strings.Join(scopes, ", ")
}

func binaryRows(binaries []conan.Binary) [][]string {
	if len(binaries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(binaries))
	for _, b := range binaries {
		compiler := b.Settings[conan.SettingCompiler]
		if version := b.Settings[conan.SettingCompilerVersion]; version != "" {
			compiler += " " + version
		}
		rows = append(rows, []string{
			shortID(b.PackageID),
			orDash(b.Settings[conan.SettingOS]),
			orDash(b.Settings[conan.SettingArch]),
			orDash(strings.TrimSpace(compiler)),
			orDash(b.Settings[conan.SettingBuildType]),
			shortRevision(b.RecipeRevision),
		})
	}
	return rows
}

func filterRows(rows [][]string, filter string) listView {
	if len(rows) == 0 {
		return listView{}
	}
	if filter == "" {
		indices := make([]int, len(rows))
		for i := range rows {
			indices[i] = i
		}
		return listView{rows: rows, indices: indices}
	}
	needle := strings.ToLower(filter)
	var filtered [][]string
	var indices []int
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(row[0]), needle) {
			filtered = append(filtered, row)
			indices = append(indices, i)
		}
	}
	return listView{rows: filtered, indices: indices}
}

func makeColumns(focus Focus, width int) []table.Column {
	contentWidth := func(columnCount int) int {
		if columnCount <= 0 {
			return maxInt(1, width)
		}
		// bubbles/table pads every cell by one column on each side.
		available := width - (2 * columnCount)
		if available < columnCount {
			return columnCount
		}
		return available
	}

	switch focus {
	case FocusRemotes:
		statusWidth := 12
		defaultWidth := 8
		content := contentWidth(4)
		nameWidth := maxInt(1, (content-statusWidth-defaultWidth)/3)
		urlWidth := maxInt(1, content-statusWidth-defaultWidth-nameWidth)
		return []table.Column{
			{Title: "Name", Width: nameWidth},
			{Title: "URL", Width: urlWidth},
			{Title: "Status", Width: statusWidth},
			{Title: "Default", Width: defaultWidth},
		}
	case FocusPackages:
		latestWidth := 16
		countWidth := 9
		content := contentWidth(3)
		nameWidth := maxInt(1, content-latestWidth-countWidth)
		return []table.Column{
			{Title: "Name", Width: nameWidth},
			{Title: "Latest", Width: latestWidth},
			{Title: "Versions", Width: countWidth},
		}
	case FocusVersions:
		countWidth := 9
		scopeWidth := 24
		content := contentWidth(3)
		versionWidth := maxInt(1, content-countWidth-scopeWidth)
		return []table.Column{
			{Title: "Version", Width: versionWidth},
			{Title: "Variants", Width: countWidth},
			{Title: "User/Channel", Width: scopeWidth},
		}
	case FocusBinaries:
		settingWidth := 10
		compilerWidth := 14
		revisionWidth := 10
		content := contentWidth(6)
		idWidth := maxInt(1, content-3*settingWidth-compilerWidth-revisionWidth)
		return []table.Column{
			{Title: "Package ID", Width: idWidth},
			{Title: "OS", Width: settingWidth},
			{Title: "Arch", Width: settingWidth},
			{Title: "Compiler", Width: compilerWidth},
			{Title: "Build", Width: settingWidth},
			{Title: "Revision", Width: revisionWidth},
		}
	default:
		return nil
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(colorSelected).
		Background(colorPrimary).
		Bold(true)
	return styles
}

func (m *Model) syncTable() {
	if m.focus == FocusConfiguration {
		return
	}
	list := m.listView()
	width := m.width
	if width <= 0 {
		width = defaultRenderWidth
	}
	inputWidth := clampInt(width-10, 10, maxFilterWidth)
	m.filterInput.Width = inputWidth
	m.searchInput.Width = inputWidth

	tableWidth := maxInt(10, width-2)
	columns := makeColumns(m.focus, tableWidth)
	rows := normalizeTableRows(toTableRows(list.rows), len(columns))
	columnsChanged := !equalTableColumns(m.tableColumns, columns)
	if columnsChanged {
		// Clear rows before swapping columns so bubbles/table never sees
		// a row/column length mismatch.
		if len(m.table.Rows()) > 0 {
			m.table.SetRows(nil)
		}
		m.table.SetColumns(columns)
		m.tableColumns = append(m.tableColumns[:0], columns...)
	}
	if columnsChanged || !equalTableRows(m.table.Rows(), rows) {
		m.table.SetRows(rows)
	}

	height := m.tableHeight()
	if m.table.Height() != height {
		m.table.SetHeight(height)
	}
	if m.table.Width() != tableWidth {
		m.table.SetWidth(tableWidth)
	}
	cursor := m.table.Cursor()
	if len(list.rows) == 0 {
		m.table.SetCursor(0)
	} else if cursor >= len(list.rows) {
		m.table.SetCursor(len(list.rows) - 1)
	}
}

func (m Model) tableHeight() int {
	if m.height <= 0 {
		return defaultTableHeight
	}
	chrome := lineCount(m.renderHeader()) + tableChromeLines + 5
	if m.focus == FocusBinaries {
		chrome += filterPanelLines + 1
	}
	available := m.height - chrome
	if available < minTableHeight {
		return minTableHeight
	}
	return available
}

func toTableRows(rows [][]string) []table.Row {
	if len(rows) == 0 {
		return nil
	}
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, table.Row(row))
	}
	return out
}

func normalizeTableRows(rows []table.Row, columnCount int) []table.Row {
	if len(rows) == 0 || columnCount <= 0 {
		return rows
	}
	for i, row := range rows {
		if len(row) == columnCount {
			continue
		}
		if len(row) > columnCount {
			rows[i] = row[:columnCount]
			continue
		}
		padded := make(table.Row, columnCount)
		copy(padded, row)
		for j := len(row); j < columnCount; j++ {
			padded[j] = ""
		}
		rows[i] = padded
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func shortRevision(rev *string) string {
	if rev == nil || *rev == "" {
		return "-"
	}
	if len(*rev) > 8 {
		return (*rev)[:8]
	}
	return *rev
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func formatEpoch(t *float64) string {
	if t == nil || *t == 0 {
		return "-"
	}
	return time.Unix(int64(*t), 0).UTC().Format("2006-01-02 15:04")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
