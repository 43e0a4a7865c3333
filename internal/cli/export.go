package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/entities"
	"github.com/mrlokans/clippings/internal/exporters"
	"github.com/mrlokans/clippings/internal/kindle"
)

// ExportCommand parses a clippings file and prints the matching entries,
// or writes them as per-book markdown files when -output is given.
type ExportCommand struct {
	ClippingsPath string
	Title         string
	Author        string
	Template      string
	Delimiter     string
	Format        string
	OutputDir     string

	Stdout io.Writer
}

func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{
		Template:  cfg.Export.Template,
		Delimiter: cfg.Export.Delimiter,
		Format:    string(exporters.FormatText),
		Stdout:    os.Stdout,
	}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", "", "Path to Kindle 'My Clippings.txt' file (required)")
	fs.StringVar(&cmd.Title, "title", "", "Only export entries whose title contains this text")
	fs.StringVar(&cmd.Author, "author", "", "Only export entries whose author contains this text")
	fs.StringVar(&cmd.Template, "template", cmd.Template, "Output template; tags: {title} {author} {action} {content} {page} {location} {date}")
	fs.StringVar(&cmd.Delimiter, "delimiter", cmd.Delimiter, "Text placed between rendered entries")
	fs.StringVar(&cmd.Format, "format", cmd.Format, "Output format: text, json or yaml")
	fs.StringVar(&cmd.OutputDir, "output", "", "Write one markdown file per book into this directory instead of printing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render highlights, notes and bookmarks from Kindle 'My Clippings.txt'.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Print every highlight of one author:\n")
		fmt.Fprintf(os.Stderr, "  %s export -file \"My Clippings.txt\" -author Steinbeck\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Custom template:\n")
		fmt.Fprintf(os.Stderr, "  %s export -file \"My Clippings.txt\" -template \"> {content} ({location})\"\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Markdown files for Obsidian:\n")
		fmt.Fprintf(os.Stderr, "  %s export -file \"My Clippings.txt\" -output ~/Obsidian/Kindle\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ClippingsPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if _, err := exporters.ParseFormat(cmd.Format); err != nil {
		return err
	}

	return nil
}

func (cmd *ExportCommand) Run() error {
	entries, err := readClippings(cmd.ClippingsPath)
	if err != nil {
		return err
	}

	filter := entities.EntryFilter{Title: cmd.Title, Author: cmd.Author}
	entries = filter.Apply(entries)
	template := exporters.NewTemplate(cmd.Template)

	if cmd.OutputDir != "" {
		absOutputDir, err := filepath.Abs(cmd.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for output: %w", err)
		}

		result, err := exporters.NewMarkdownExporter(absOutputDir, template, cmd.Delimiter).Export(entries)
		if err != nil {
			return fmt.Errorf("failed to export to markdown: %w", err)
		}

		fmt.Fprintf(cmd.Stdout, "Exported %d entries from %d books to %s\n",
			result.EntriesProcessed, result.BooksProcessed, absOutputDir)
		if result.BooksFailed > 0 {
			return fmt.Errorf("%d books failed to export", result.BooksFailed)
		}
		return nil
	}

	format, err := exporters.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	return exporters.Write(cmd.Stdout, format, entries, template, cmd.Delimiter)
}

func readClippings(path string) ([]entities.Entry, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("clippings file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open clippings file: %w", err)
	}
	defer file.Close()

	entries, err := kindle.NewParser().ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clippings: %w", err)
	}
	return entries, nil
}
