package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/mrlokans/clippings/internal/entities"
	"github.com/mrlokans/clippings/internal/utils"
)

// MarkdownExporter writes one markdown file per book, each entry rendered
// through the configured template.
type MarkdownExporter struct {
	ExportDir string
	Template  *Template
	Delimiter string
	Result    ExportResult
}

func NewMarkdownExporter(exportDir string, template *Template, delimiter string) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir: exportDir,
		Template:  template,
		Delimiter: delimiter,
	}
}

func (exporter *MarkdownExporter) Export(entries []entities.Entry) (ExportResult, error) {
	exporter.Result = ExportResult{}

	if err := os.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	used := make(map[string]bool)
	for _, book := range GroupByBook(entries) {
		filename := utils.UniqueFilename(utils.BookFilename(book.Title, book.Author), used)
		outputPath := filepath.Join(exporter.ExportDir, filename)
		markdown, err := exporter.GenerateMarkdown(book)
		if err != nil {
			log.Printf("Failed to render book '%s': %v", book.Title, err)
			exporter.Result.BooksFailed++
			continue
		}
		if err := os.WriteFile(outputPath, []byte(markdown), 0644); err != nil {
			log.Printf("Failed to export book '%s': %v", book.Title, err)
			exporter.Result.BooksFailed++
			continue
		}
		exporter.Result.BooksProcessed++
		exporter.Result.EntriesProcessed += len(book.Entries)
	}

	return exporter.Result, nil
}

// frontmatter is the YAML header of an exported book file.
type frontmatter struct {
	ContentSource string `yaml:"content_source"`
	ContentType   string `yaml:"content_type"`
	CreatedAt     string `yaml:"created_at"`
	Title         string `yaml:"title"`
	Author        string `yaml:"author"`
	Entries       int    `yaml:"entries"`
}

func (exporter *MarkdownExporter) GenerateMarkdown(book Book) (string, error) {
	author := UnknownAuthor
	if book.Author != nil {
		author = *book.Author
	}

	header, err := yaml.Marshal(frontmatter{
		ContentSource: "kindle",
		ContentType:   "book_highlights",
		CreatedAt:     time.Now().Format("2006-01-02"),
		Title:         book.Title,
		Author:        author,
		Entries:       len(book.Entries),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var builder strings.Builder
	builder.WriteString("---\n")
	builder.Write(header)
	builder.WriteString("---\n\n")
	builder.WriteString("## Highlights\n\n")
	builder.WriteString(exporter.Template.RenderAll(book.Entries, exporter.Delimiter))
	builder.WriteString("\n")

	return builder.String(), nil
}
