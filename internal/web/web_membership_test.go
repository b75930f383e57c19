package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/clubhouse-go/internal/factory"
)

func TestJoinClub(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("bjorn@example.com")

	form := url.Values{"passcode": {factory.TestMemberPasscode}}
	rr := ts.post("/join-club", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "member")
	assertContainsText(t, doc, ".flash-success", "club member")
}

func TestJoinClubWrongPasscode(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("bjorn@example.com")

	form := url.Values{"passcode": {"guess"}}
	rr := ts.post("/join-club", form)

	// Form is re-rendered with the error; the tier is unchanged
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".errors", "passcode")

	rr = ts.get("/")
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "basic")
}

func TestJoinAdmin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("bjorn@example.com")

	form := url.Values{"passcode": {factory.TestAdminPasscode}}
	rr := ts.post("/join-admin", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "admin")
}

func TestJoinAdminRejectsMemberPasscode(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("bjorn@example.com")

	// The member passcode doesn't open the admin tier
	form := url.Values{"passcode": {factory.TestMemberPasscode}}
	rr := ts.post("/join-admin", form)

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".errors", "passcode")
}

func TestAdminSubmittingMemberPasscodeBecomesMember(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("bjorn@example.com")

	rr := ts.post("/join-admin", url.Values{"passcode": {factory.TestAdminPasscode}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	// Submitting the member passcode sets the tier to member, even downward
	rr = ts.post("/join-club", url.Values{"passcode": {factory.TestMemberPasscode}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.get("/")
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "member")
}

func TestJoinPagesRequireLogin(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/join-club", "/join-admin"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusForbidden, rr.Code, "GET %s", path)

		doc := parseHTML(rr.Body)
		assertContainsText(t, doc, "h1", "Access denied")
	}

	// POSTing a passcode without a session is denied too, not redirected
	rr := ts.post("/join-club", url.Values{"passcode": {factory.TestMemberPasscode}})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
