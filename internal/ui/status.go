package ui

import (
	"github.com/papadavis47/mountains/internal/store"
)

// StatusLine maps the store's connection state to its indicator string.
func StatusLine(st store.Status) string {
	switch st.State {
	case store.StateConnected:
		return RenderPass("✓ Synced")
	case store.StateError:
		return RenderWarn("⚠️ Sync Error")
	default:
		return RenderFaint("⚪ Offline")
	}
}

// StatusDetail returns the error message behind a Sync Error indicator,
// or "" when there is nothing extra to show.
func StatusDetail(st store.Status) string {
	if st.State == store.StateError {
		return st.Message
	}
	return ""
}
