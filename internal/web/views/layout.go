// Package views renders the board's HTML pages as templ components.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/clubhouse-go/internal/model"
)

// FlashMessage is a one-shot notice shown at the top of the next page load
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData carries the state every page needs to render its shell
type PageData struct {
	Title string
	User  *model.User
	Flash *FlashMessage
}

// page wraps body in the shared document shell: head, nav reflecting the
// viewer's auth state and tier, and the flash banner
func page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s | Clubhouse</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
`, templ.EscapeString(data.Title)); err != nil {
			return err
		}

		if err := nav(data.User).Render(ctx, w); err != nil {
			return err
		}

		if data.Flash != nil {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-%s">%s</div>
`, templ.EscapeString(data.Flash.Type), templ.EscapeString(data.Flash.Message)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "<main>\n"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func nav(user *model.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav>
<a href="/">Clubhouse</a>
`); err != nil {
			return err
		}

		if user == nil {
			_, err := io.WriteString(w, `<a href="/sign-up">Sign up</a>
<a href="/log-in">Log in</a>
</nav>
`)
			return err
		}

		if _, err := fmt.Fprintf(w, `<span class="nav-user">%s (%s)</span>
`, templ.EscapeString(user.DisplayName()), templ.EscapeString(string(user.Membership))); err != nil {
			return err
		}

		if user.Membership.CanPost() {
			if _, err := io.WriteString(w, `<a href="/new-message">New message</a>
`); err != nil {
				return err
			}
		}
		if user.Membership != model.MembershipMember {
			if _, err := io.WriteString(w, `<a href="/join-club">Join the club</a>
`); err != nil {
				return err
			}
		}
		if user.Membership != model.MembershipAdmin {
			if _, err := io.WriteString(w, `<a href="/join-admin">Become an admin</a>
`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<form method="post" action="/log-out"><button type="submit">Log out</button></form>
</nav>
`)
		return err
	})
}

// errorList renders an ordered list of validation messages
func errorList(messages []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(messages) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<ul class="errors">
`); err != nil {
			return err
		}
		for _, msg := range messages {
			if _, err := fmt.Fprintf(w, "<li>%s</li>\n", templ.EscapeString(msg)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	})
}
