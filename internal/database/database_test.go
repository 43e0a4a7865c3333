package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/clippings/internal/entities"
)

func strPtr(s string) *string {
	return &s
}

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleEntries() []entities.Entry {
	return []entities.Entry{
		entities.NewEntry("Fahrenheit 451", strPtr("Ray Bradbury"), entities.ActionHighlight, nil, strPtr("784-785"), "Saturday, 26 March 2016 18:37:26", strPtr("Who knows who might be the target of the well-read man?")),
		entities.NewEntry("Harry_Potter", nil, entities.ActionNote, strPtr("207-207"), nil, "Monday, April 21, 2025 8:55:24 PM", strPtr("")),
		entities.NewEntry("Fahrenheit 451", strPtr("Ray Bradbury"), entities.ActionBookmark, nil, strPtr("346"), "Saturday, 26 March 2016 15:46:21", nil),
	}
}

func TestDatabase_SaveImport(t *testing.T) {
	db := setupTestDB(t)

	session, err := db.SaveImport("My Clippings.txt", sampleEntries())
	require.NoError(t, err)
	assert.Len(t, session.ID, 36)
	assert.Equal(t, "My Clippings.txt", session.Source)
	assert.Equal(t, 3, session.EntriesCount)

	entries, err := db.ListEntries(entities.EntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), entries)

	stored, err := db.GetImport(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.EntriesCount)
}

func TestDatabase_SaveImport_ReplacesSameSource(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.SaveImport("a.txt", sampleEntries())
	require.NoError(t, err)
	_, err = db.SaveImport("b.txt", sampleEntries()[:1])
	require.NoError(t, err)
	second, err := db.SaveImport("a.txt", sampleEntries()[1:2])
	require.NoError(t, err)

	imports, err := db.ListImports()
	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, second.ID, imports[0].ID)

	entries, err := db.ListEntries(entities.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Fahrenheit 451", entries[0].Title())
	assert.Equal(t, "Harry_Potter", entries[1].Title())
}

func TestDatabase_SaveImport_Empty(t *testing.T) {
	db := setupTestDB(t)

	session, err := db.SaveImport("empty.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, session.EntriesCount)

	entries, err := db.ListEntries(entities.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDatabase_ListEntries_Filter(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.SaveImport("My Clippings.txt", sampleEntries())
	require.NoError(t, err)

	t.Run("by title", func(t *testing.T) {
		entries, err := db.ListEntries(entities.EntryFilter{Title: "451"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("by author", func(t *testing.T) {
		entries, err := db.ListEntries(entities.EntryFilter{Author: "Brad"})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, entities.ActionHighlight, entries[0].Action())
		assert.Equal(t, entities.ActionBookmark, entries[1].Action())
	})

	t.Run("author filter is case sensitive", func(t *testing.T) {
		entries, err := db.ListEntries(entities.EntryFilter{Author: "brad"})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("matches the in-memory filter", func(t *testing.T) {
		filter := entities.EntryFilter{Title: "Harry"}
		entries, err := db.ListEntries(filter)
		require.NoError(t, err)
		assert.Equal(t, filter.Apply(sampleEntries()), entries)
	})
}

func TestDatabase_GetImport_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetImport("missing")
	assert.ErrorIs(t, err, ErrImportNotFound)
}

func TestDatabase_Ping(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "ping.db"))
	require.NoError(t, err)

	assert.NoError(t, db.Ping())
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}
