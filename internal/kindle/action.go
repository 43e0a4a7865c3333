package kindle

import (
	"github.com/mrlokans/clippings/internal/entities"
)

const (
	// Unicode word and digit classes; Go's \w and \d are ASCII only.
	wordClass  = `[\p{L}\p{M}\p{N}\p{Pc}]`
	digitClass = `\p{Nd}`
	rangeExpr  = digitClass + `+(?:-` + digitClass + `+)?`
)

// Matches:
//
//	- Your Highlight on page 8 | location 64-64 | Added on Tuesday, April 15, 2025 10:16:21 PM
//	- Your Highlight at location 784-785 | Added on Saturday, 26 March 2016 18:37:26
//	- Your Bookmark on page xii | Added on Friday, 5 July 2024 09:55:52
const actionLineExpr = `^- Your (?P<action>` + wordClass + `+) ` +
	`(?:on [Pp]age (?P<page>` + rangeExpr + `|` + wordClass + `+)|at [Ll]ocation (?P<location>` + rangeExpr + `)) ` +
	`(?:\| [Ll]ocation (?P<secondary>` + rangeExpr + `) )?` +
	`\| Added on (?P<date>.+)$`

type actionLine struct {
	action   entities.Action
	page     *string
	location *string
	date     string
}

// parseActionLine extracts the action, page, location and date of a block.
// A primary "at location" wins over a trailing "| location" clause.
func (p *Parser) parseActionLine(line string, lineNo int) (actionLine, error) {
	m := p.actionPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return actionLine{}, &MalformedActionLineError{Line: lineNo, Text: line}
	}

	group := func(name string) *string {
		i := p.actionPattern.SubexpIndex(name)
		if m[2*i] < 0 {
			return nil
		}
		s := line[m[2*i]:m[2*i+1]]
		return &s
	}

	action, err := entities.ParseAction(*group("action"))
	if err != nil {
		return actionLine{}, &MalformedActionLineError{Line: lineNo, Text: line, Err: ErrUnknownAction}
	}

	location := group("location")
	if location == nil {
		location = group("secondary")
	}

	return actionLine{
		action:   action,
		page:     group("page"),
		location: location,
		date:     *group("date"),
	}, nil
}
