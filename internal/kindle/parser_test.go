package kindle

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/clippings/internal/entities"
)

func strPtr(s string) *string {
	return &s
}

func requireOne(t *testing.T, input string) entities.Entry {
	t.Helper()
	entries, err := NewParser().Parse(input)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return entries[0]
}

func TestParser_Parse_HighlightOnPage(t *testing.T) {
	input := "The Grapes of Wrath (John Steinbeck)\n" +
		"- Your Highlight on page 12453252 | Added on Friday, 5 July 2024 09:55:52\n" +
		"\n" +
		"How can we live...\n"

	entry := requireOne(t, input)

	assert.Equal(t, "The Grapes of Wrath", entry.Title())
	author, ok := entry.Author()
	assert.True(t, ok)
	assert.Equal(t, "John Steinbeck", author)
	assert.Equal(t, entities.ActionHighlight, entry.Action())
	page, ok := entry.Page()
	assert.True(t, ok)
	assert.Equal(t, "12453252", page)
	_, ok = entry.Location()
	assert.False(t, ok)
	assert.Equal(t, "Friday, 5 July 2024 09:55:52", entry.Date())
	content, ok := entry.Content()
	assert.True(t, ok)
	assert.Equal(t, "How can we live...", content)
}

func TestParser_Parse_ContentWithoutBlankLine(t *testing.T) {
	input := "The Grapes of Wrath (John Steinbeck)\n" +
		"- Your Highlight on page 12453252 | Added on Friday, 5 July 2024 09:55:52\n" +
		"How can we live without our lives ? How will we know it's us without our past ? No. Leave it. Burn it.\n"

	entry := requireOne(t, input)

	content, _ := entry.Content()
	assert.Equal(t, "How can we live without our lives ? How will we know it's us without our past ? No. Leave it. Burn it.", content)
}

func TestParser_Parse_NoAuthor(t *testing.T) {
	input := `Harry_Potter_und_die_Kammer_des_Schreckens
- Your Highlight on page 207-207 | Added on Monday, April 21, 2025 8:55:24 PM

Harry drehte sich auf die Seite
==========
`
	entry := requireOne(t, input)

	assert.Equal(t, "Harry_Potter_und_die_Kammer_des_Schreckens", entry.Title())
	_, ok := entry.Author()
	assert.False(t, ok)
	assert.False(t, entry.AuthorContains(""))
	page, _ := entry.Page()
	assert.Equal(t, "207-207", page)
}

func TestParser_Parse_LocationOnlyFormat(t *testing.T) {
	input := `Fahrenheit 451 (Ray Bradbury)
- Your Highlight at location 3867-3869 | Added on Saturday, 26 March 2016 18:37:26

Who knows who might be the target of the well-read man?
==========
`
	entry := requireOne(t, input)

	_, ok := entry.Page()
	assert.False(t, ok)
	location, ok := entry.Location()
	assert.True(t, ok)
	assert.Equal(t, "3867-3869", location)
}

func TestParser_Parse_PageAndLocation(t *testing.T) {
	input := `The Selfish Gene (Richard Dawkins)
- Your Highlight on page 14 | location 214-215 | Added on Saturday, 26 March 2016 14:59:39

We are survival machines
==========
`
	entry := requireOne(t, input)

	page, ok := entry.Page()
	assert.True(t, ok)
	assert.Equal(t, "14", page)
	location, ok := entry.Location()
	assert.True(t, ok)
	assert.Equal(t, "214-215", location)
}

func TestParser_Parse_Note(t *testing.T) {
	input := `The_Power_of_Now (Eckhart Tolle)
- Your Note on page 31 | Location 307 | Added on Tuesday, April 15, 2025 11:33:26 PM

Watch the thinker or be present in the moment
==========
`
	entry := requireOne(t, input)

	assert.Equal(t, entities.ActionNote, entry.Action())
	location, _ := entry.Location()
	assert.Equal(t, "307", location)
	content, ok := entry.Content()
	assert.True(t, ok)
	assert.Equal(t, "Watch the thinker or be present in the moment", content)
}

func TestParser_Parse_BookmarkDiscardsContent(t *testing.T) {
	input := `Fahrenheit 451 (Ray Bradbury)
- Your Bookmark at location 346 | Added on Saturday, 26 March 2016 15:46:21

stray text that belongs to nobody
and another line
==========
`
	entry := requireOne(t, input)

	assert.Equal(t, entities.ActionBookmark, entry.Action())
	_, ok := entry.Content()
	assert.False(t, ok)
}

func TestParser_Parse_EmptyHighlightKeepsContent(t *testing.T) {
	input := `Test Book (Test Author)
- Your Highlight at location 275 | Added on Monday, January 6, 2025 3:10:00 PM


==========
`
	entry := requireOne(t, input)

	content, ok := entry.Content()
	assert.True(t, ok)
	assert.Equal(t, "", content)
}

func TestParser_Parse_MultiLineHighlight(t *testing.T) {
	input := `Test Book (Test Author)
- Your Highlight on page 1 | location 10-15 | Added on Wednesday, January 1, 2025 12:00:00 PM

This highlight spans
multiple lines of text
that should be joined.
==========
`
	entry := requireOne(t, input)

	content, _ := entry.Content()
	assert.Equal(t, "This highlight spans multiple lines of text that should be joined.", content)
}

func TestParser_Parse_WordPage(t *testing.T) {
	input := `Test Book (Test Author)
- Your Bookmark on page xii | Added on Wednesday, January 1, 2025 12:00:00 PM
==========
`
	entry := requireOne(t, input)

	page, _ := entry.Page()
	assert.Equal(t, "xii", page)
	_, ok := entry.Location()
	assert.False(t, ok)
}

func TestParser_Parse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n", "==========\n", "==========\n\n==========\n\n"} {
		entries, err := NewParser().Parse(input)
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestParser_Parse_ToleratesSeparatorRuns(t *testing.T) {
	input := `===
==========
Book One (Author One)
- Your Highlight on page 1 | Added on Monday, 1 January 2024 10:00:00
First
==========

==========
Book Two (Author Two)
- Your Highlight on page 2 | Added on Monday, 1 January 2024 11:00:00
Second
=====
`
	entries, err := NewParser().Parse(input)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Book One", entries[0].Title())
	assert.Equal(t, "Book Two", entries[1].Title())
}

func TestParser_Parse_LastBlockWithoutSeparator(t *testing.T) {
	input := "Book (Author)\n- Your Note at location 5 | Added on Monday, 1 January 2024 10:00:00\n\nlast words"

	entry := requireOne(t, input)

	content, _ := entry.Content()
	assert.Equal(t, "last words", content)
}

func TestParser_Parse_SampleFile(t *testing.T) {
	f, err := os.Open("testdata/sample_clippings.txt")
	require.NoError(t, err)
	defer f.Close()

	entries, err := NewParser().ParseReader(f)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	wantTitles := []string{
		"The_Power_of_Now",
		"The_Power_of_Now",
		"Harry_Potter_und_die_Kammer_des_Schreckens",
		"Fahrenheit 451",
		"Fahrenheit 451",
		"The Selfish Gene: 30th Anniversary Edition",
	}
	for i, entry := range entries {
		assert.Equal(t, wantTitles[i], entry.Title(), "entry %d", i)

		_, hasContent := entry.Content()
		assert.Equal(t, entry.Action().HasContent(), hasContent, "entry %d", i)
	}

	assert.Equal(t, entities.ActionBookmark, entries[3].Action())
	assert.Equal(t, "Tuesday, April 15, 2025 10:16:21 PM", entries[0].Date())
	content, _ := entries[5].Content()
	assert.Equal(t, "We are survival machines robot vehicles blindly programmed", content)
}

func TestParser_Parse_MalformedActionLine(t *testing.T) {
	input := `Good Book (Author)
- Your Highlight on page 1 | Added on Monday, 1 January 2024 10:00:00
fine
==========
Bad Book (Author)
- Your Highlight somewhere | Added on Monday, 1 January 2024 10:00:00
broken
==========
`
	entries, err := NewParser().Parse(input)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.True(t, errors.Is(err, ErrMalformedActionLine))

	var malformed *MalformedActionLineError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 6, malformed.Line)
	assert.Equal(t, "- Your Highlight somewhere | Added on Monday, 1 January 2024 10:00:00", malformed.Text)
	assert.Contains(t, err.Error(), "somewhere")
}

func TestParser_Parse_UnknownAction(t *testing.T) {
	input := `Book (Author)
- Your Clip on page 3 | Added on Monday, 1 January 2024 10:00:00
text
`
	_, err := NewParser().Parse(input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedActionLine))
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestParser_Parse_TruncatedBlock(t *testing.T) {
	for name, input := range map[string]string{
		"end of input":               "Lonely Title (Nobody)\n",
		"before separator":           "Lonely Title (Nobody)\n==========\n",
		"blank lines then end":       "Lonely Title (Nobody)\n\n",
		"blank lines then separator": "Lonely Title (Nobody)\n\n==========\n",
		"after a complete block":     "Book (A)\n- Your Note at location 3 | Added on d\n\nx\n==========\nLonely Title\n\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser().Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTruncatedBlock))
		})
	}
}

func TestParser_Parse_PreservesBlockCount(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		b.WriteString("Book (Author)\n")
		switch i % 3 {
		case 0:
			b.WriteString("- Your Highlight on page 1 | location 2-3 | Added on Monday, 1 January 2024 10:00:00\n\nquote\n")
		case 1:
			b.WriteString("- Your Note at location 9 | Added on Monday, 1 January 2024 10:00:00\n\nnote\n")
		case 2:
			b.WriteString("- Your Bookmark on page 4 | Added on Monday, 1 January 2024 10:00:00\n\n")
		}
		b.WriteString("==========\n")
	}

	entries, err := NewParser().Parse(b.String())
	require.NoError(t, err)
	require.Len(t, entries, 25)
	for i, entry := range entries {
		_, hasContent := entry.Content()
		assert.Equal(t, i%3 != 2, hasContent)
	}
}

func TestParseTitleAuthor(t *testing.T) {
	tests := []struct {
		input          string
		expectedTitle  string
		expectedAuthor *string
	}{
		{"The_Power_of_Now (Eckhart Tolle)", "The_Power_of_Now", strPtr("Eckhart Tolle")},
		{"The Selfish Gene: 30th Anniversary Edition (Richard Dawkins)", "The Selfish Gene: 30th Anniversary Edition", strPtr("Richard Dawkins")},
		{"Harry_Potter_und_die_Kammer_des_Schreckens", "Harry_Potter_und_die_Kammer_des_Schreckens", nil},
		{"Book With (Nested (Parentheses)) (Author Name)", "Book With (Nested (Parentheses))", strPtr("Author Name")},
		{"Multi-Line Book: Special & Chars (Jane Doe-Smith)", "Multi-Line Book: Special & Chars", strPtr("Jane Doe-Smith")},
		{"Spaced Out   (Someone)", "Spaced Out", strPtr("Someone")},
		{"Empty Author ()", "Empty Author", strPtr("")},
		{"NoSpace(Author)", "NoSpace(Author)", nil},
		{"Der Steppenwolf\u00a0(Hermann Hesse)", "Der Steppenwolf", strPtr("Hermann Hesse")},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			title, author := parser.parseTitleAuthor(tt.input)
			assert.Equal(t, tt.expectedTitle, title)
			assert.Equal(t, tt.expectedAuthor, author)
		})
	}
}

func TestParseActionLine(t *testing.T) {
	tests := []struct {
		input    string
		action   entities.Action
		page     *string
		location *string
		date     string
	}{
		{
			input:    "- Your Highlight on page 8 | Location 64-64 | Added on Tuesday, April 15, 2025 10:16:21 PM",
			action:   entities.ActionHighlight,
			page:     strPtr("8"),
			location: strPtr("64-64"),
			date:     "Tuesday, April 15, 2025 10:16:21 PM",
		},
		{
			input:    "- Your Highlight on page 92 | location 1406-1407 | Added on Saturday, 26 March 2016 14:59:39",
			action:   entities.ActionHighlight,
			page:     strPtr("92"),
			location: strPtr("1406-1407"),
			date:     "Saturday, 26 March 2016 14:59:39",
		},
		{
			input:    "- Your Bookmark at location 346 | Added on Saturday, 26 March 2016 15:46:21",
			action:   entities.ActionBookmark,
			location: strPtr("346"),
			date:     "Saturday, 26 March 2016 15:46:21",
		},
		{
			input:  "- Your Note on page 12 | Added on Friday, 5 July 2024 09:55:52",
			action: entities.ActionNote,
			page:   strPtr("12"),
			date:   "Friday, 5 July 2024 09:55:52",
		},
		{
			input:  "- Your Highlight on page ⅻ | Added on d",
			action: entities.ActionHighlight,
			page:   strPtr("ⅻ"),
			date:   "d",
		},
		{
			input:  "- Your Bookmark on page xiv | Added on d",
			action: entities.ActionBookmark,
			page:   strPtr("xiv"),
			date:   "d",
		},
		{
			input:    "- Your Highlight on page ١٢ | Location ٣٤-٣٥ | Added on d",
			action:   entities.ActionHighlight,
			page:     strPtr("١٢"),
			location: strPtr("٣٤-٣٥"),
			date:     "d",
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parser.parseActionLine(tt.input, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.action, got.action)
			assert.Equal(t, tt.page, got.page)
			assert.Equal(t, tt.location, got.location)
			assert.Equal(t, tt.date, got.date)
		})
	}
}

func TestParseActionLine_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"- Your Highlight | Added on Monday, 1 January 2024",
		"- Your Highlight on page 1 | Added on ",
		"- Your Highlight on page 1",
		"Your Highlight on page 1 | Added on Monday",
	}

	parser := NewParser()
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := parser.parseActionLine(input, 7)
			require.Error(t, err)
			var malformed *MalformedActionLineError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, 7, malformed.Line)
		})
	}
}
