package exporters

import (
	"strings"

	"github.com/mrlokans/clippings/internal/entities"
)

const (
	TagTitle    = "{title}"
	TagAuthor   = "{author}"
	TagAction   = "{action}"
	TagContent  = "{content}"
	TagPage     = "{page}"
	TagLocation = "{location}"
	TagDate     = "{date}"

	// UnknownAuthor is rendered for {author} when the title line had none.
	UnknownAuthor = "Unknown author"

	DefaultTemplate = "{content}\n\n*{author} - {title}*"
)

type tag struct {
	token   string
	project func(entities.Entry) string
}

func orEmpty(s string, _ bool) string {
	return s
}

// tags is the closed set of placeholders a template may use.
var tags = []tag{
	{TagTitle, entities.Entry.Title},
	{TagAuthor, func(e entities.Entry) string {
		if author, ok := e.Author(); ok {
			return author
		}
		return UnknownAuthor
	}},
	{TagAction, func(e entities.Entry) string { return e.Action().String() }},
	{TagContent, func(e entities.Entry) string { return orEmpty(e.Content()) }},
	{TagPage, func(e entities.Entry) string { return orEmpty(e.Page()) }},
	{TagLocation, func(e entities.Entry) string { return orEmpty(e.Location()) }},
	{TagDate, entities.Entry.Date},
}

// Template renders entries by substituting placeholders such as {title}.
// Unrecognised tokens are left as they are.
type Template struct {
	text string
}

func NewTemplate(text string) *Template {
	return &Template{text: text}
}

func (t *Template) Text() string {
	return t.text
}

// Render substitutes every placeholder occurrence in a single pass, so text
// coming from the entry is never expanded again.
func (t *Template) Render(entry entities.Entry) string {
	var pairs []string
	for _, tg := range tags {
		if strings.Contains(t.text, tg.token) {
			pairs = append(pairs, tg.token, tg.project(entry))
		}
	}
	if len(pairs) == 0 {
		return t.text
	}
	return strings.NewReplacer(pairs...).Replace(t.text)
}

// RenderAll renders each entry and joins the results with delimiter.
func (t *Template) RenderAll(entries []entities.Entry, delimiter string) string {
	rendered := make([]string, len(entries))
	for i, entry := range entries {
		rendered[i] = t.Render(entry)
	}
	return strings.Join(rendered, delimiter)
}

func Render(template string, entry entities.Entry) string {
	return NewTemplate(template).Render(entry)
}
