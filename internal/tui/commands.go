package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/invadm/invadm/internal/api"
)

// opTimeout bounds every backend call issued from the dashboard.
const opTimeout = 15 * time.Second

// Message types for async operations

type loadDoneMsg struct {
	seq   int // load sequence this completion belongs to
	items []api.Item
	err   error
}

type saveDoneMsg struct {
	item api.Item
	err  error
}

type deleteDoneMsg struct {
	id  int
	err error
}

type pasteDoneMsg struct {
	paste api.Paste
	err   error
}

type envDoneMsg struct {
	env api.Environment
	err error
}

type logDoneMsg struct {
	receipt api.LogReceipt
	err     error
}

// loadItemsCmd fetches the full item list. The sequence number is echoed
// back in the completion so stale loads can be discarded.
func loadItemsCmd(client *api.Client, baseURL string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		items, err := client.ListItems(ctx, baseURL)
		return loadDoneMsg{seq: seq, items: items, err: err}
	}
}

func createItemCmd(client *api.Client, baseURL string, fields api.ItemFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		item, err := client.CreateItem(ctx, baseURL, fields)
		msg := saveDoneMsg{err: err}
		if item != nil {
			msg.item = *item
		}
		return msg
	}
}

func updateItemCmd(client *api.Client, baseURL string, id int, fields api.ItemFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		item, err := client.UpdateItem(ctx, baseURL, id, fields)
		msg := saveDoneMsg{err: err}
		if item != nil {
			msg.item = *item
		}
		return msg
	}
}

func deleteItemCmd(client *api.Client, baseURL string, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := client.DeleteItem(ctx, baseURL, id)
		return deleteDoneMsg{id: id, err: err}
	}
}

func createPasteCmd(client *api.Client, baseURL string, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		paste, err := client.CreatePaste(ctx, baseURL, text)
		msg := pasteDoneMsg{err: err}
		if paste != nil {
			msg.paste = *paste
		}
		return msg
	}
}

func fetchEnvironmentCmd(client *api.Client, baseURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		env, err := client.FetchEnvironment(ctx, baseURL)
		return envDoneMsg{env: env, err: err}
	}
}

func sendLogCmd(client *api.Client, baseURL string, level, message string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		receipt, err := client.CreateLogMessage(ctx, baseURL, level, message)
		msg := logDoneMsg{err: err}
		if receipt != nil {
			msg.receipt = *receipt
		}
		return msg
	}
}
