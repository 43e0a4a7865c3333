package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is the kind of annotation recorded in a clippings block.
type Action string

const (
	ActionHighlight Action = "Highlight"
	ActionNote      Action = "Note"
	ActionBookmark  Action = "Bookmark"
)

// ParseAction maps a clippings keyword onto the closed set of actions.
func ParseAction(keyword string) (Action, error) {
	switch Action(keyword) {
	case ActionHighlight, ActionNote, ActionBookmark:
		return Action(keyword), nil
	}
	return "", fmt.Errorf("unknown action %q", keyword)
}

// HasContent reports whether entries of this kind carry an annotation body.
func (a Action) HasContent() bool {
	return a == ActionHighlight || a == ActionNote
}

func (a Action) String() string {
	return string(a)
}

// Entry is a single annotation parsed from a clippings export.
// It is immutable: fields are only reachable through accessors.
type Entry struct {
	title    string
	author   *string
	action   Action
	page     *string
	location *string
	date     string
	content  *string
}

// NewEntry builds an Entry. Nil pointers mark absent optional fields.
// Content is dropped for actions that carry no body.
func NewEntry(title string, author *string, action Action, page, location *string, date string, content *string) Entry {
	if !action.HasContent() {
		content = nil
	}
	return Entry{
		title:    title,
		author:   clone(author),
		action:   action,
		page:     clone(page),
		location: clone(location),
		date:     date,
		content:  clone(content),
	}
}

func (e Entry) Title() string {
	return e.title
}

func (e Entry) Author() (string, bool) {
	return deref(e.author)
}

func (e Entry) Action() Action {
	return e.action
}

func (e Entry) Page() (string, bool) {
	return deref(e.page)
}

func (e Entry) Location() (string, bool) {
	return deref(e.location)
}

// Date returns the "Added on" text exactly as it appeared in the export.
func (e Entry) Date() string {
	return e.date
}

func (e Entry) Content() (string, bool) {
	return deref(e.content)
}

// AuthorContains reports whether the author is known and contains substr.
func (e Entry) AuthorContains(substr string) bool {
	if e.author == nil {
		return false
	}
	return strings.Contains(*e.author, substr)
}

type entryJSON struct {
	Title    string  `json:"title" yaml:"title"`
	Author   *string `json:"author" yaml:"author"`
	Action   Action  `json:"action" yaml:"action"`
	Page     *string `json:"page" yaml:"page"`
	Location *string `json:"location" yaml:"location"`
	Date     string  `json:"date" yaml:"date"`
	Content  *string `json:"content" yaml:"content"`
}

func (e Entry) view() entryJSON {
	return entryJSON{
		Title:    e.title,
		Author:   e.author,
		Action:   e.action,
		Page:     e.page,
		Location: e.location,
		Date:     e.date,
		Content:  e.content,
	}
}

// MarshalJSON encodes absent optional fields as null.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.view())
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var v entryJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	action, err := ParseAction(string(v.Action))
	if err != nil {
		return err
	}
	*e = NewEntry(v.Title, v.Author, action, v.Page, v.Location, v.Date, v.Content)
	return nil
}

// MarshalYAML encodes absent optional fields as null.
func (e Entry) MarshalYAML() (interface{}, error) {
	return e.view(), nil
}

// EntryFilter selects entries by title and author substrings.
// Empty fields match everything.
type EntryFilter struct {
	Title  string
	Author string
}

func (f EntryFilter) Match(e Entry) bool {
	if f.Title != "" && !strings.Contains(e.Title(), f.Title) {
		return false
	}
	if f.Author != "" && !e.AuthorContains(f.Author) {
		return false
	}
	return true
}

// Apply returns the matching entries, preserving order.
func (f EntryFilter) Apply(entries []Entry) []Entry {
	if f.Title == "" && f.Author == "" {
		return entries
	}
	var matched []Entry
	for _, e := range entries {
		if f.Match(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
