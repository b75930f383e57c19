package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SignUpForm holds the re-displayed field values after a failed submission.
// Password fields are never echoed back.
type SignUpForm struct {
	FirstName string
	LastName  string
	Username  string
}

func SignUpPage(data PageData, form SignUpForm, errors []string) templ.Component {
	return page(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Sign up</h1>\n"); err != nil {
			return err
		}
		if err := errorList(errors).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/sign-up">
<label>First name <input type="text" name="first_name" value="%s"></label>
<label>Last name <input type="text" name="last_name" value="%s"></label>
<label>Email <input type="email" name="username" value="%s"></label>
<label>Password <input type="password" name="password"></label>
<label>Confirm password <input type="password" name="confirm_password"></label>
<button type="submit">Sign up</button>
</form>
<p>Already have an account? <a href="/log-in">Log in</a></p>
`,
			templ.EscapeString(form.FirstName),
			templ.EscapeString(form.LastName),
			templ.EscapeString(form.Username))
		return err
	}))
}

func LogInPage(data PageData, username string, errors []string) templ.Component {
	return page(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Log in</h1>\n"); err != nil {
			return err
		}
		if err := errorList(errors).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/log-in">
<label>Email <input type="email" name="username" value="%s"></label>
<label>Password <input type="password" name="password"></label>
<button type="submit">Log in</button>
</form>
<p>New here? <a href="/sign-up">Sign up</a></p>
`, templ.EscapeString(username))
		return err
	}))
}

// DeniedPage is rendered with a 403 status when an anonymous visitor hits a
// page that requires a logged-in user
func DeniedPage(data PageData) templ.Component {
	return page(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Access denied</h1>
<p>You must be logged in to view this page.</p>
<p><a href="/log-in">Log in</a> or <a href="/sign-up">sign up</a>.</p>
`)
		return err
	}))
}
