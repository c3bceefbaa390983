package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invadm/invadm/internal/api"
)

func newTestModel(items ...api.Item) Model {
	m := NewModel(api.NewClient(), "http://localhost:5000")
	m.Width = 100
	m.Height = 40
	if items != nil {
		m.Loading = false
		m.Items = items
		m.refreshTable()
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	result, ok := updated.(Model)
	require.True(t, ok, "Update must return a tui.Model")
	return result, cmd
}

var testItems = []api.Item{
	{ID: 1, Name: "Widget", Quantity: 3, Price: 9.99},
	{ID: 2, Name: "Bolt", Quantity: 100, Price: 0.5},
}

func TestLoadSuccessReplacesList(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, loadDoneMsg{seq: m.LoadSeq, items: testItems})

	assert.False(t, m.Loading)
	assert.Empty(t, m.ErrMsg)
	assert.Equal(t, testItems, m.Items)
	assert.Len(t, m.Table.Rows(), 2)
}

func TestLoadFailureClearsList(t *testing.T) {
	m := newTestModel(testItems...)
	m, cmd := m.startLoad()
	_ = cmd

	m, _ = update(t, m, loadDoneMsg{seq: m.LoadSeq, err: api.NewAPIError(500, "db down")})

	assert.False(t, m.Loading)
	assert.Equal(t, "db down", m.ErrMsg)
	assert.Empty(t, m.Items)
	assert.Empty(t, m.Table.Rows())
}

func TestStaleLoadCompletionIsDiscarded(t *testing.T) {
	m := newTestModel()
	staleSeq := m.LoadSeq

	// A newer load supersedes the one in flight
	m, _ = m.startLoad()
	require.Greater(t, m.LoadSeq, staleSeq)

	m, _ = update(t, m, loadDoneMsg{seq: staleSeq, items: testItems})

	// The stale completion must not touch anything
	assert.True(t, m.Loading)
	assert.Empty(t, m.Items)

	m, _ = update(t, m, loadDoneMsg{seq: m.LoadSeq, items: testItems[:1]})
	assert.False(t, m.Loading)
	assert.Equal(t, testItems[:1], m.Items)
}

func TestCommittingNewBaseURLReloads(t *testing.T) {
	m := newTestModel(testItems...)
	seqBefore := m.LoadSeq

	m, _ = update(t, m, keyPress("u"))
	require.True(t, m.EditingURL)

	m.URLInput.SetValue("http://backend-2:5000")
	m, cmd := update(t, m, keyPress("enter"))

	assert.False(t, m.EditingURL)
	assert.Equal(t, "http://backend-2:5000", m.BaseURL)
	assert.Equal(t, seqBefore+1, m.LoadSeq)
	assert.True(t, m.Loading)
	assert.NotNil(t, cmd)
}

func TestCommittingUnchangedBaseURLDoesNotReload(t *testing.T) {
	m := newTestModel(testItems...)
	seqBefore := m.LoadSeq

	m, _ = update(t, m, keyPress("u"))
	m, cmd := update(t, m, keyPress("enter"))

	assert.False(t, m.EditingURL)
	assert.Equal(t, seqBefore, m.LoadSeq)
	assert.Nil(t, cmd)
}

func TestCancellingURLEditKeepsOldBaseURL(t *testing.T) {
	m := newTestModel(testItems...)

	m, _ = update(t, m, keyPress("u"))
	m.URLInput.SetValue("http://somewhere-else:9000")
	m, cmd := update(t, m, keyPress("esc"))

	assert.False(t, m.EditingURL)
	assert.Equal(t, "http://localhost:5000", m.BaseURL)
	assert.Nil(t, cmd)
}

func TestAddOpensEmptyForm(t *testing.T) {
	m := newTestModel(testItems...)

	m, _ = update(t, m, keyPress("a"))

	require.Equal(t, overlayForm, m.Active)
	assert.Equal(t, FormAdd, m.Form.Mode)
	assert.Empty(t, m.Form.NameInput.Value())
}

func TestEditOpensFormSeededFromSelectedRow(t *testing.T) {
	m := newTestModel(testItems...)
	m.Table.SetCursor(0)

	m, _ = update(t, m, keyPress("e"))

	require.Equal(t, overlayForm, m.Active)
	assert.Equal(t, FormEdit, m.Form.Mode)
	assert.Equal(t, 1, m.Form.ItemID)
	assert.Equal(t, "Widget", m.Form.NameInput.Value())
	assert.Equal(t, "3", m.Form.QuantityInput.Value())
	assert.Equal(t, "9.99", m.Form.PriceInput.Value())
}

func TestEditWithEmptyListDoesNothing(t *testing.T) {
	m := newTestModel()
	m.Loading = false

	m, cmd := update(t, m, keyPress("e"))

	assert.Equal(t, overlayNone, m.Active)
	assert.Nil(t, cmd)
}

func TestSaveSuccessClosesFormAndReloadsOnce(t *testing.T) {
	m := newTestModel(testItems...)
	m, _ = update(t, m, keyPress("a"))
	seqBefore := m.LoadSeq

	m, cmd := update(t, m, saveDoneMsg{item: api.Item{ID: 3, Name: "Nut", Quantity: 5, Price: 0.2}})

	assert.Equal(t, overlayNone, m.Active)
	assert.Equal(t, seqBefore+1, m.LoadSeq)
	assert.True(t, m.Loading)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.StatusMsg, "Nut")
}

func TestSaveFailureKeepsFormOpenWithDraft(t *testing.T) {
	m := newTestModel(testItems...)
	m, _ = update(t, m, keyPress("a"))
	m.Form.NameInput.SetValue("Nut")
	m.Form.QuantityInput.SetValue("5")
	m.Form.PriceInput.SetValue("0.2")
	m.Form.Submitting = true
	seqBefore := m.LoadSeq

	m, cmd := update(t, m, saveDoneMsg{err: api.NewAPIError(500, "db down")})

	assert.Equal(t, overlayForm, m.Active)
	assert.False(t, m.Form.Submitting)
	assert.Equal(t, "db down", m.Form.ErrMsg)
	assert.Equal(t, "Nut", m.Form.NameInput.Value())
	assert.Equal(t, seqBefore, m.LoadSeq)
	assert.Nil(t, cmd)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newTestModel(testItems...)
	m.Table.SetCursor(1)

	m, _ = update(t, m, keyPress("d"))

	require.Equal(t, overlayConfirm, m.Active)
	assert.Equal(t, 2, m.Confirm.Item.ID)
	assert.Zero(t, m.DeletingID)

	// Escaping the confirmation must not delete anything
	m, cmd := update(t, m, keyPress("esc"))
	assert.Equal(t, overlayNone, m.Active)
	assert.Zero(t, m.DeletingID)
	assert.Nil(t, cmd)
}

func TestConfirmedDeleteMarksRowAndStartsDelete(t *testing.T) {
	m := newTestModel(testItems...)
	m.Table.SetCursor(0)

	m, _ = update(t, m, keyPress("d"))
	m, cmd := update(t, m, keyPress("y"))

	assert.Equal(t, overlayNone, m.Active)
	assert.Equal(t, 1, m.DeletingID)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.Table.Rows()[0][1], "deleting")
}

func TestDeleteFailureClearsIndicatorAndShowsError(t *testing.T) {
	m := newTestModel(testItems...)
	m.DeletingID = 1
	seqBefore := m.LoadSeq

	m, cmd := update(t, m, deleteDoneMsg{id: 1, err: api.NewTransportError("connection refused", errors.New("dial tcp"))})

	assert.Zero(t, m.DeletingID)
	assert.Equal(t, "cannot reach backend: connection refused", m.ErrMsg)
	assert.Equal(t, seqBefore, m.LoadSeq)
	assert.Nil(t, cmd)
}

func TestDeleteSuccessClearsIndicatorAndReloads(t *testing.T) {
	m := newTestModel(testItems...)
	m.DeletingID = 1
	seqBefore := m.LoadSeq

	m, cmd := update(t, m, deleteDoneMsg{id: 1})

	assert.Zero(t, m.DeletingID)
	assert.Equal(t, seqBefore+1, m.LoadSeq)
	assert.NotNil(t, cmd)
}

func TestDeleteOtherItemAllowedWhileDeleteInFlight(t *testing.T) {
	m := newTestModel(testItems...)
	m.DeletingID = 1
	m.Table.SetCursor(1)

	m, _ = update(t, m, keyPress("d"))
	require.Equal(t, overlayConfirm, m.Active)
	assert.Equal(t, 2, m.Confirm.Item.ID)

	m, cmd := update(t, m, keyPress("y"))
	assert.Equal(t, 2, m.DeletingID)
	assert.NotNil(t, cmd)

	// The first delete completing must not clear the newer indicator
	m, _ = update(t, m, deleteDoneMsg{id: 1})
	assert.Equal(t, 2, m.DeletingID)
}

func TestDeleteKeyIgnoredForItemAlreadyDeleting(t *testing.T) {
	m := newTestModel(testItems...)
	m.DeletingID = 1
	m.Table.SetCursor(0)

	m, cmd := update(t, m, keyPress("d"))

	assert.Equal(t, overlayNone, m.Active)
	assert.Nil(t, cmd)
}

func TestPasteOverlayFlow(t *testing.T) {
	m := newTestModel(testItems...)

	m, _ = update(t, m, keyPress("p"))
	require.Equal(t, overlayPaste, m.Active)

	// Empty text is rejected locally
	m, cmd := update(t, m, keyPress("enter"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.Paste.ErrMsg)

	m.Paste.Input.SetValue("hello")
	m, cmd = update(t, m, keyPress("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.Paste.Submitting)

	m, _ = update(t, m, pasteDoneMsg{paste: api.Paste{URL: "https://paste.example/abc", ExpiresAt: "2026-09-01T00:00:00Z"}})
	assert.False(t, m.Paste.Submitting)
	require.NotNil(t, m.Paste.Result)
	assert.Equal(t, "https://paste.example/abc", m.Paste.Result.URL)
}

func TestEnvironmentOverlayFetchesOnOpen(t *testing.T) {
	m := newTestModel(testItems...)

	m, cmd := update(t, m, keyPress("v"))

	require.Equal(t, overlayEnv, m.Active)
	assert.True(t, m.Env.Loading)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, envDoneMsg{env: api.Environment{"hostname": "backend-1"}})
	assert.False(t, m.Env.Loading)
	assert.Equal(t, "backend-1", m.Env.Env["hostname"])
}

func TestLogOverlayDefaultsToInfoAndResetsAfterSuccess(t *testing.T) {
	m := newTestModel(testItems...)

	m, _ = update(t, m, keyPress("l"))
	require.Equal(t, overlayLog, m.Active)
	assert.Equal(t, "info", m.Log.Level())

	// Cycle the level down to warning
	m, _ = update(t, m, keyPress("tab"))
	assert.Equal(t, "warning", m.Log.Level())

	m.Log.Input.SetValue("disk almost full")
	m, cmd := update(t, m, keyPress("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.Log.Submitting)

	m, _ = update(t, m, logDoneMsg{receipt: api.LogReceipt{Status: "ok", Level: "warning"}})
	require.NotNil(t, m.Log.Receipt)

	// Closing after success resets the overlay for next time
	m, _ = update(t, m, keyPress("esc"))
	assert.Equal(t, overlayNone, m.Active)
	assert.Nil(t, m.Log.Receipt)
	assert.Equal(t, "info", m.Log.Level())
	assert.Empty(t, m.Log.Input.Value())
}

func TestCompletionsForClosedOverlaysAreIgnored(t *testing.T) {
	m := newTestModel(testItems...)

	// No overlay open: stray completions must not disturb anything
	m, cmd := update(t, m, saveDoneMsg{item: api.Item{ID: 9}})
	assert.Equal(t, overlayNone, m.Active)
	assert.Nil(t, cmd)

	m, cmd = update(t, m, pasteDoneMsg{paste: api.Paste{URL: "x"}})
	assert.Nil(t, cmd)
	assert.Nil(t, m.Paste.Result)
}
