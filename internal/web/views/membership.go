package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// JoinPage is the passcode form for a membership tier. The same component
// serves both the member and admin pages; action and copy differ per tier.
func JoinPage(data PageData, heading, prompt, action string, errors []string) templ.Component {
	return page(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p>%s</p>\n",
			templ.EscapeString(heading), templ.EscapeString(prompt)); err != nil {
			return err
		}
		if err := errorList(errors).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="%s">
<label>Passcode <input type="password" name="passcode"></label>
<button type="submit">Submit</button>
</form>
`, templ.EscapeString(action))
		return err
	}))
}
