package ui

import "github.com/roknus/conan-ui/pkg/conan"

// Data messages carry the selection context they were fetched for so
// update handlers can drop results superseded by a later navigation.

type rootMsg struct {
	info conan.RootInfo
	err  error
}

type remotesMsg struct {
	repos conan.RepositoriesResponse
	auto  bool
	err   error
}

type packagesMsg struct {
	remote string
	query  string
	page   conan.PackagesPage
	err    error
}

type versionsMsg struct {
	remote string
	name   string
	page   conan.PackageVersionsPage
	err    error
}

type binariesMsg struct {
	remote  string
	name    string
	version string
	page    conan.BinariesPage
	err     error
}

type optionsMsg struct {
	remote  string
	name    string
	version string
	page    conan.FilterOptionsPage
	err     error
}

type configurationMsg struct {
	remote    string
	name      string
	version   string
	packageID string
	detail    conan.ConfigurationDetail
	err       error
}
