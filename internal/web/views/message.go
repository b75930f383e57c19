package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// NewMessageForm holds re-displayed values after a failed post
type NewMessageForm struct {
	Title string
	Text  string
}

func NewMessagePage(data PageData, form NewMessageForm, errors []string) templ.Component {
	return page(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>New message</h1>\n"); err != nil {
			return err
		}
		if err := errorList(errors).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/new-message">
<label>Title <input type="text" name="title" value="%s"></label>
<label>Message <textarea name="text">%s</textarea></label>
<button type="submit">Post</button>
</form>
`,
			templ.EscapeString(form.Title),
			templ.EscapeString(form.Text))
		return err
	}))
}

// MembersOnlyPage is shown when a basic user tries to post
func MembersOnlyPage(data PageData) templ.Component {
	return page(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Members only</h1>
<p>Posting is restricted to club members.</p>
<p><a href="/join-club">Join the club</a> to start posting.</p>
`)
		return err
	}))
}
