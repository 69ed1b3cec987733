package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roknus/conan-ui/pkg/apiclient"
	"github.com/roknus/conan-ui/pkg/conan"
)

const requestTimeout = 10 * time.Second

func loadRootCmd(client *apiclient.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		info, err := client.Root(ctx)
		return rootMsg{info: info, err: err}
	}
}

func loadRemotesCmd(client *apiclient.Client, auto bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		repos, err := client.Repositories(ctx)
		return remotesMsg{repos: repos, auto: auto, err: err}
	}
}

func loadPackagesCmd(client *apiclient.Client, remote, query string, page int, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.Packages(ctx, remote, query, page, packagesPerPage, refresh)
		return packagesMsg{remote: remote, query: query, page: result, err: err}
	}
}

func loadVersionsCmd(client *apiclient.Client, remote, name string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := client.Versions(ctx, remote, name, refresh)
		return versionsMsg{remote: remote, name: name, page: page, err: err}
	}
}

func loadBinariesCmd(client *apiclient.Client, remote, name, version string, filter conan.BinaryFilter, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := client.Binaries(ctx, remote, name, version, filter, refresh)
		return binariesMsg{remote: remote, name: name, version: version, page: page, err: err}
	}
}

func loadFilterOptionsCmd(client *apiclient.Client, remote, name, version string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := client.FilterOptions(ctx, remote, name, version, refresh)
		return optionsMsg{remote: remote, name: name, version: version, page: page, err: err}
	}
}

func loadConfigurationCmd(client *apiclient.Client, remote, name, version string, query apiclient.ConfigurationQuery, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		detail, err := client.Configuration(ctx, remote, name, version, query, refresh)
		return configurationMsg{
			remote:    remote,
			name:      name,
			version:   version,
			packageID: query.PackageID,
			detail:    detail,
			err:       err,
		}
	}
}
