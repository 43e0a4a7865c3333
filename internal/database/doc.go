// Package database stores parsed clippings in SQLite through GORM.
//
// Every call to SaveImport creates an ImportSession identified by a UUID and
// one EntryRecord per entry, keeping the entry's position in the source
// file. Importing the same source again replaces its previous session:
//
//	db, err := database.NewDatabase("./clippings.db")
//	session, err := db.SaveImport("/Volumes/Kindle/documents/My Clippings.txt", entries)
//	entries, err := db.ListEntries(entities.EntryFilter{Author: "Bradbury"})
package database
