package kindle

import (
	"strings"

	"github.com/mrlokans/clippings/internal/entities"
)

// collectContent turns the lines after the action line into the annotation
// body. Bookmarks never have one, whatever the block contains.
func collectContent(action entities.Action, lines []string) *string {
	if !action.HasContent() {
		return nil
	}
	text := strings.TrimSpace(strings.Join(lines, " "))
	return &text
}
