package kindle

import "strings"

// parseTitleAuthor splits "Book Title (Author Name)" into its parts.
// Lines without a trailing parenthesised suffix are all title.
func (p *Parser) parseTitleAuthor(line string) (title string, author *string) {
	matches := p.titleAuthorPattern.FindStringSubmatch(line)
	if matches == nil {
		return line, nil
	}
	name := matches[2]
	return strings.TrimSpace(matches[1]), &name
}
