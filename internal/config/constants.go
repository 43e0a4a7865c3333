package config

const (
	// DefaultDatabasePath is the default path for the entry store
	DefaultDatabasePath = "./clippings.db"

	// DefaultTemplate mirrors exporters.DefaultTemplate; config cannot import exporters.
	DefaultTemplate = "{content}\n\n*{author} - {title}*"

	DefaultDelimiter = "\n---\n"
)
