package ui

import (
	"fmt"
	"sort"
	"strings"
)

const recipeOnlyMessage = "Recipe only: no binaries have been built for this version."

func (m Model) View() string {
	if m.backendErr != "" {
		return m.renderBackendError()
	}
	header := m.renderHeader()
	body := m.renderBody()
	footer := helpStyle.Render(m.helpLine())
	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m Model) renderHeader() string {
	title := "Conan UI"
	if m.root.Version != "" {
		title += " " + m.root.Version
	}
	status := m.status
	if m.isLoading() {
		status = m.spin.View() + " " + status
	}
	lines := []string{
		titleStyle.Render(title),
		labelStyle.Render(fmt.Sprintf("Backend: %s", m.client.BaseURL())),
		labelStyle.Render(fmt.Sprintf("Layer: %s", focusLabel(m.focus))),
		labelStyle.Render(fmt.Sprintf("Status: %s", status)),
	}
	if path := m.breadcrumb(); path != "" {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("Path: %s", path)))
	}
	if m.searchActive {
		lines = append(lines, filterStyle.Render(m.searchInput.View()))
	} else if m.searchQuery != "" {
		lines = append(lines, filterStyle.Render("Search: "+m.searchQuery))
	}
	if m.filterActive {
		lines = append(lines, filterStyle.Render(m.filterInput.View()))
	} else if value := m.filterInput.Value(); value != "" {
		lines = append(lines, filterStyle.Render("Filter: "+value))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBody() string {
	if m.focus == FocusConfiguration {
		return m.renderConfiguration()
	}
	var sections []string
	if m.focus == FocusBinaries {
		sections = append(sections, m.renderFilterPanel())
	}
	view := m.table.View()
	if len(m.table.Rows()) == 0 {
		view += "\n" + emptyStyle.Render(m.emptyBodyMessage())
	} else if m.focus == FocusBinaries && m.binaries.RecipeOnly() {
		view += "\n" + emptyStyle.Render(recipeOnlyMessage)
	}
	sections = append(sections, view)
	return strings.Join(sections, "\n")
}

// renderFilterPanel shows all eight filter dimensions, settings on the
// first line and reference scopes on the second. The focused dimension is
// highlighted; active values stand out from unfiltered ones.
func (m Model) renderFilterPanel() string {
	entries := make([]string, 0, int(dimCount))
	for dim := filterDim(0); dim < dimCount; dim++ {
		value := m.filterValue(dim)
		display := value
		if display == "" {
			if dim == dimRevision {
				display = "latest"
			} else {
				display = "any"
			}
		}
		entry := fmt.Sprintf("%s <%s>", filterLabel(dim), display)
		switch {
		case dim == m.filterFocus:
			entry = filterStyle.Render(entry)
		case value != "":
			entry = activeStyle.Render(entry)
		default:
			entry = labelStyle.Render(entry)
		}
		entries = append(entries, entry)
	}
	settings := strings.Join(entries[:dimRevision], "  ")
	scopes := strings.Join(entries[dimRevision:], "  ")
	return settings + "\n" + scopes
}

func (m Model) renderConfiguration() string {
	if !m.hasConfiguration {
		return emptyStyle.Render("Loading configuration...")
	}
	d := m.configuration

	ref := d.Name + "/" + d.Version
	if user := deref(d.User); user != "" {
		ref += "@" + user
		if channel := deref(d.Channel); channel != "" {
			ref += "/" + channel
		}
	}

	lines := []string{
		titleStyle.Render(ref),
		labelStyle.Render("package_id: ") + m.selectedBinary.PackageID,
		labelStyle.Render("path: ") + d.Path,
	}
	if rev := deref(m.selectedBinary.RecipeRevision); rev != "" {
		lines = append(lines, labelStyle.Render("recipe revision: ")+rev)
	}
	if created := formatEpoch(d.Created); created != "-" {
		lines = append(lines, labelStyle.Render("created: ")+created)
	}
	for _, meta := range []struct {
		label string
		value *string
	}{
		{"description", d.Description},
		{"license", d.License},
		{"homepage", d.Homepage},
		{"author", d.Author},
	} {
		if value := deref(meta.value); value != "" {
			lines = append(lines, labelStyle.Render(meta.label+": ")+value)
		}
	}

	lines = append(lines, "", titleStyle.Render("Settings"))
	lines = append(lines, sortedPairs(d.Settings)...)
	lines = append(lines, "", titleStyle.Render("Options"))
	lines = append(lines, sortedPairs(d.Options)...)
	lines = append(lines, "", titleStyle.Render("Requires"))
	if len(d.Requires) == 0 {
		lines = append(lines, emptyStyle.Render("  (none)"))
	} else {
		for _, req := range d.Requires {
			lines = append(lines, "  "+req)
		}
	}
	return strings.Join(lines, "\n")
}

func sortedPairs(values map[string]string) []string {
	if len(values) == 0 {
		return []string{emptyStyle.Render("  (none)")}
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, "  "+labelStyle.Render(key+": ")+values[key])
	}
	return lines
}

func (m Model) renderBackendError() string {
	lines := []string{
		titleStyle.Render("Conan UI"),
		"",
		errorStyle.Render("Backend not reachable"),
		labelStyle.Render(fmt.Sprintf("Backend: %s", m.client.BaseURL())),
		labelStyle.Render(m.backendErr),
		"",
		labelStyle.Render("Start the API server with `conan-ui serve` or point --api-url at a running instance."),
		"",
		helpStyle.Render("Keys: r retry  q quit"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) helpLine() string {
	switch m.focus {
	case FocusRemotes:
		return "Keys: q quit  enter select  / filter  r refresh  j/k or up/down move"
	case FocusPackages:
		return "Keys: q quit  esc up  enter open  s search  / filter  h/l page  r refresh"
	case FocusVersions:
		return "Keys: q quit  esc up  enter open  / filter  r refresh"
	case FocusBinaries:
		return "Keys: q quit  esc up  enter inspect  tab filter dim  h/l change value  backspace clear  x clear all  r refresh"
	case FocusConfiguration:
		return "Keys: q quit  esc back  r refresh"
	default:
		return "Keys: q quit"
	}
}
