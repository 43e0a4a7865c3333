package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/database"
	"github.com/mrlokans/clippings/internal/exporters"
)

// ImportCommand stores the entries of a clippings file in the local database.
type ImportCommand struct {
	ClippingsPath string
	DatabasePath  string
	Verbose       bool
	DryRun        bool

	Stdout io.Writer
}

func NewImportCommand(cfg *config.Config) *ImportCommand {
	return &ImportCommand{
		DatabasePath: cfg.Database.Path,
		Stdout:       os.Stdout,
	}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", "", "Path to Kindle 'My Clippings.txt' file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the local database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import Kindle 'My Clippings.txt' into the local database.\n")
		fmt.Fprintf(os.Stderr, "Re-importing the same file replaces its previous entries.\n\n")
		fmt.Fprintf(os.Stderr, "The clippings file is typically found at:\n")
		fmt.Fprintf(os.Stderr, "  /Volumes/Kindle/documents/My Clippings.txt\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file \"/Volumes/Kindle/documents/My Clippings.txt\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -file \"My Clippings.txt\" -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ClippingsPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	out := cmd.Stdout

	fmt.Fprintln(out, "Kindle Import")
	fmt.Fprintln(out, "=============")

	if cmd.DryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "File: %s\n", cmd.ClippingsPath)

	entries, err := readClippings(cmd.ClippingsPath)
	if err != nil {
		return err
	}

	books := exporters.GroupByBook(entries)
	fmt.Fprintf(out, "Found %d entries in %d books\n", len(entries), len(books))

	if cmd.Verbose {
		fmt.Fprintln(out, "\n=== Books Found ===")
		for i, book := range books {
			authorStr := "(no author)"
			if book.Author != nil {
				authorStr = *book.Author
			}
			fmt.Fprintf(out, "%d. \"%s\" by %s (%d entries)\n", i+1, book.Title, authorStr, len(book.Entries))
		}
	}

	if cmd.DryRun {
		fmt.Fprintln(out, "\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	absSource, err := filepath.Abs(cmd.ClippingsPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for clippings file: %w", err)
	}

	fmt.Fprintf(out, "\nSaving to database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	session, err := db.SaveImport(absSource, entries)
	if err != nil {
		return fmt.Errorf("failed to save import: %w", err)
	}

	fmt.Fprintln(out, "\n=== Import Summary ===")
	fmt.Fprintf(out, "Import ID: %s\n", session.ID)
	fmt.Fprintf(out, "Entries saved: %d\n", session.EntriesCount)
	fmt.Fprintln(out, "\nImport complete!")
	return nil
}
