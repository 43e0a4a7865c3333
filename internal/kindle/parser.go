package kindle

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mrlokans/clippings/internal/entities"
)

// Parser parses the Kindle "My Clippings.txt" format.
// A Parser holds only compiled patterns and is safe for concurrent use.
type Parser struct {
	titleAuthorPattern *regexp.Regexp
	actionPattern      *regexp.Regexp
}

func NewParser() *Parser {
	return &Parser{
		titleAuthorPattern: regexp.MustCompile(`^(.*)[\s\p{Z}]+\((.*)\)$`),
		actionPattern:      regexp.MustCompile(actionLineExpr),
	}
}

// ParseReader reads the whole export from r and parses it.
func (p *Parser) ParseReader(r io.Reader) ([]entities.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading clippings: %w", err)
	}
	return p.Parse(string(data))
}

// Parse converts the export content into entries in file order.
// It stops at the first malformed block.
func (p *Parser) Parse(content string) ([]entities.Entry, error) {
	lines := splitLines(content)
	entries := []entities.Entry{}

	i := 0
	for {
		for i < len(lines) && (lines[i] == "" || isSeparator(lines[i])) {
			i++
		}
		if i >= len(lines) {
			return entries, nil
		}

		title, author := p.parseTitleAuthor(lines[i])
		i++

		if blockIsBlank(lines[i:]) {
			return nil, fmt.Errorf("%w: line %d: %q has no action line", ErrTruncatedBlock, i, title)
		}
		meta, err := p.parseActionLine(lines[i], i+1)
		if err != nil {
			return nil, err
		}
		i++

		end := i
		for end < len(lines) && !isSeparator(lines[end]) {
			end++
		}
		body := collectContent(meta.action, lines[i:end])
		i = end

		entries = append(entries, entities.NewEntry(title, author, meta.action, meta.page, meta.location, meta.date, body))
	}
}

// splitLines splits content into trimmed lines. Kindle prefixes titles with
// a byte order mark, which is dropped along with surrounding whitespace.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(strings.ReplaceAll(line, "\ufeff", ""))
	}
	return lines
}

// blockIsBlank reports whether lines hold nothing but blank lines up to the
// next separator or the end of input.
func blockIsBlank(lines []string) bool {
	for _, line := range lines {
		if isSeparator(line) {
			return true
		}
		if line != "" {
			return false
		}
	}
	return true
}

func isSeparator(line string) bool {
	return line != "" && strings.Trim(line, "=") == ""
}
