package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/clippings/internal/cli"
	"github.com/mrlokans/clippings/internal/database"
	"github.com/mrlokans/clippings/internal/exporters"
	"github.com/mrlokans/clippings/internal/http"
	"github.com/mrlokans/clippings/internal/scheduler"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.EntryStore = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ scheduler.Importer = (*database.Database)(nil)

// =============================================================================
// Scheduling
// =============================================================================

var _ http.SyncService = (*scheduler.ClippingsSyncScheduler)(nil)

// =============================================================================
// Exporters
// =============================================================================

var _ exporters.EntryExporter = (*exporters.MarkdownExporter)(nil)

// =============================================================================
// Commands
// =============================================================================

type command interface {
	ParseFlags(args []string) error
	Run() error
}

var _ command = (*cli.ExportCommand)(nil)
var _ command = (*cli.ImportCommand)(nil)
