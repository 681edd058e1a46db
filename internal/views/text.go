package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/codyseavey/lookout/internal/models"
)

// RenderText flattens a view into plain text wrapped at width columns. A
// width of zero or less disables wrapping.
func RenderText(view models.MessageView, width int) string {
	var blocks []string
	for _, msg := range view.Messages {
		var sb strings.Builder
		if msg.Text != "" {
			sb.WriteString(msg.Text)
		}
		if e := msg.Embed; e != nil {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			writeEmbed(&sb, e)
		}
		text := strings.TrimRight(sb.String(), "\n")
		if width > 0 {
			// Word wrap first, then hard wrap anything longer than a line.
			text = wrap.String(wordwrap.String(text, width), width)
		}
		blocks = append(blocks, text)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func writeEmbed(sb *strings.Builder, e *models.Embed) {
	if e.Title != "" {
		fmt.Fprintf(sb, "%s\n", e.Title)
	}
	if e.Description != "" {
		fmt.Fprintf(sb, "%s\n", e.Description)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(sb, "\n%s\n%s\n", f.Name, f.Value)
	}
	if e.ImageURL != "" {
		fmt.Fprintf(sb, "\n[image] %s\n", e.ImageURL)
	}
	if e.ThumbnailURL != "" {
		fmt.Fprintf(sb, "[thumbnail] %s\n", e.ThumbnailURL)
	}
	if e.Footer != "" {
		fmt.Fprintf(sb, "\n%s\n", e.Footer)
	}
}
