package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/clippings/internal/entities"
)

// ErrImportNotFound is returned by GetImport for unknown session IDs.
var ErrImportNotFound = errors.New("import not found")

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.ImportSession{},
		&entities.EntryRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is still usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// SaveImport stores entries parsed from source as a new import session.
// Entries from an earlier import of the same source are replaced, so the
// store always holds the latest snapshot of each file.
func (d *Database) SaveImport(source string, entries []entities.Entry) (*entities.ImportSession, error) {
	session := &entities.ImportSession{
		ID:           uuid.New().String(),
		Source:       source,
		EntriesCount: len(entries),
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var previous []string
		if err := tx.Model(&entities.ImportSession{}).Where("source = ?", source).Pluck("id", &previous).Error; err != nil {
			return fmt.Errorf("failed to look up previous imports: %w", err)
		}
		if len(previous) > 0 {
			if err := tx.Where("import_id IN ?", previous).Delete(&entities.EntryRecord{}).Error; err != nil {
				return fmt.Errorf("failed to delete previous entries: %w", err)
			}
			if err := tx.Where("id IN ?", previous).Delete(&entities.ImportSession{}).Error; err != nil {
				return fmt.Errorf("failed to delete previous imports: %w", err)
			}
		}

		if err := tx.Create(session).Error; err != nil {
			return fmt.Errorf("failed to create import session: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}
		records := make([]entities.EntryRecord, len(entries))
		for i, entry := range entries {
			records[i] = entities.NewEntryRecord(session.ID, i, entry)
		}
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to save entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// ListEntries returns stored entries matching filter, oldest import first
// and in file order within an import.
func (d *Database) ListEntries(filter entities.EntryFilter) ([]entities.Entry, error) {
	query := d.DB.Model(&entities.EntryRecord{}).
		Joins("JOIN import_sessions ON import_sessions.id = entry_records.import_id").
		Order("import_sessions.created_at, entry_records.position, entry_records.id")

	if filter.Title != "" {
		query = query.Where("instr(entry_records.title, ?) > 0", filter.Title)
	}
	if filter.Author != "" {
		query = query.Where("entry_records.author IS NOT NULL AND instr(entry_records.author, ?) > 0", filter.Author)
	}

	var records []entities.EntryRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	entries := make([]entities.Entry, len(records))
	for i, record := range records {
		entries[i] = record.ToEntry()
	}
	return entries, nil
}

func (d *Database) ListImports() ([]entities.ImportSession, error) {
	var sessions []entities.ImportSession
	err := d.DB.Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (d *Database) GetImport(id string) (*entities.ImportSession, error) {
	var session entities.ImportSession
	err := d.DB.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrImportNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
