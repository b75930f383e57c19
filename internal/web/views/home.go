package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/clubhouse-go/internal/model"
)

// HomePage is the board itself: the message list, newest first
func HomePage(data PageData, messages []*model.MessageWithAuthor) templ.Component {
	return page(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Message board</h1>\n"); err != nil {
			return err
		}

		if len(messages) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No messages yet.</p>
`)
			return err
		}

		if _, err := io.WriteString(w, `<ul class="messages">
`); err != nil {
			return err
		}
		for _, msg := range messages {
			if _, err := fmt.Fprintf(w, `<li class="message">
<h2>%s</h2>
<p>%s</p>
<p class="byline">%s &middot; %s</p>
</li>
`,
				templ.EscapeString(msg.Title),
				templ.EscapeString(msg.Text),
				templ.EscapeString(msg.AuthorName),
				templ.EscapeString(msg.CreatedAt.Format("2 Jan 2006 15:04"))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	}))
}
