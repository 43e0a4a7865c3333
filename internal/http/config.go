package http

import (
	"github.com/mrlokans/clippings/internal/exporters"
	"github.com/mrlokans/clippings/internal/kindle"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Parser *kindle.Parser

	// Store persists imports; import and listing endpoints are disabled when nil.
	Store EntryStore

	// Health is checked by /health; nil reports "not configured".
	Health Pinger

	// Sync exposes the clippings sync scheduler; /api/sync is disabled when nil.
	Sync SyncService

	Template  *exporters.Template
	Delimiter string

	MaxUploadSize int64 // bytes

	Version string
}
