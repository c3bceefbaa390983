// Package tui implements the interactive inventory dashboard.
//
// The dashboard is a Bubble Tea application built around a single canonical
// item list. Every mutation (create, update, delete) goes to the backend
// first and is followed by a full reload of the list, so the table always
// shows what the backend has, never an optimistic local edit.
//
// # Architecture
//
// Model is the top-level coordinator. It owns the canonical list, the
// backend base URL, and a set of modal overlays:
//
//   - FormModel: unified add/edit item form
//   - confirm overlay: delete confirmation
//   - paste overlay: share text through the backend's pastebin
//   - environment overlay: backend environment report
//   - log overlay: send a log message to the backend
//
// Exactly one overlay is active at a time. While an overlay is open all
// input is routed to it; the table underneath stays visible but inert.
//
// # Reloads
//
// Reloads are asynchronous commands. Each reload carries a monotonically
// increasing sequence number and completions whose sequence is no longer
// current are discarded, so a slow response from an old base URL can never
// overwrite the list loaded from the new one.
package tui
