// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - EntryStore: Save, list and fetch imported entries (internal/http/stores.go)
//   - Pinger: Health check of the backing database (internal/http/stores.go)
//   - Importer: Snapshot import used by the sync scheduler (internal/scheduler/clippings_sync.go)
//
// ## Scheduling Interfaces
//
//   - SyncService: Sync status and manual runs for the API (internal/http/stores.go)
//
// ## Export Interfaces
//
//   - EntryExporter: Writes parsed entries somewhere, e.g. markdown files (internal/exporters/generic.go)
//
// # Compile-time Checks
//
// checks.go holds `var _ Interface = (*Impl)(nil)` assertions for every
// implementation above. Add one when introducing a new implementation.
package interfaces
