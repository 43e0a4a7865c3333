package http

import (
	"github.com/mrlokans/clippings/internal/entities"
	"github.com/mrlokans/clippings/internal/scheduler"
)

// EntryStore is the persistence the clippings controller needs.
// *database.Database implements it.
type EntryStore interface {
	SaveImport(source string, entries []entities.Entry) (*entities.ImportSession, error)
	ListEntries(filter entities.EntryFilter) ([]entities.Entry, error)
	ListImports() ([]entities.ImportSession, error)
	GetImport(id string) (*entities.ImportSession, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping() error
}

// SyncService is the clippings sync scheduler as seen by the API.
// *scheduler.ClippingsSyncScheduler implements it.
type SyncService interface {
	Report() scheduler.Report
	Sync() (*entities.ImportSession, error)
}
