package entities

import "time"

// ImportSession records one stored parse of a clippings file.
type ImportSession struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	Source       string        `gorm:"index;size:1024" json:"source"`
	EntriesCount int           `json:"entries_count"`
	Entries      []EntryRecord `gorm:"foreignKey:ImportID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}

// EntryRecord is the persisted form of an Entry.
type EntryRecord struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ImportID string  `gorm:"index;size:36" json:"import_id"`
	Position int     `gorm:"index" json:"position"` // order within the source file
	Title    string  `gorm:"index;size:512" json:"title"`
	Author   *string `gorm:"index;size:256" json:"author"`
	Action   Action  `gorm:"size:16" json:"action"`
	Page     *string `gorm:"size:64" json:"page"`
	Location *string `gorm:"size:64" json:"location"`
	Date     string  `gorm:"size:128" json:"date"`
	Content  *string `gorm:"type:text" json:"content"`
}

func NewEntryRecord(importID string, position int, e Entry) EntryRecord {
	return EntryRecord{
		ImportID: importID,
		Position: position,
		Title:    e.title,
		Author:   clone(e.author),
		Action:   e.action,
		Page:     clone(e.page),
		Location: clone(e.location),
		Date:     e.date,
		Content:  clone(e.content),
	}
}

func (r EntryRecord) ToEntry() Entry {
	return NewEntry(r.Title, r.Author, r.Action, r.Page, r.Location, r.Date, r.Content)
}
