package resolve

import (
	"strconv"
	"strings"
	"time"
)

// Identity names the caller on whose behalf a document is rendered. Only
// user_full_name consumes it.
type Identity struct {
	FirstName  string
	LastName   string
	MiddleName string
}

// TemplateMeta carries the display name and version of the template being
// rendered.
type TemplateMeta struct {
	Name    string
	Version string
}

// Context is the ephemeral, request-scoped system input: the clock, template
// metadata and an optional caller identity. It is never persisted.
type Context struct {
	Now      time.Time
	Template TemplateMeta
	User     *Identity
}

// systemValue dispatches a system placeholder code against the computed
// values. Unrecognized codes fall through to current_year and otherwise
// resolve empty.
func systemValue(code string, sc Context) string {
	switch code {
	case "current_date":
		return FormatDate(sc.Now, false)
	case "current_datetime":
		return FormatDate(sc.Now, true)
	case "template_version":
		return sc.Template.Version
	case "template_name":
		return sc.Template.Name
	case "user_full_name":
		return fullName(sc.User)
	case "current_year":
		return strconv.Itoa(sc.Now.Year())
	}
	return ""
}

// FormatDate renders a timestamp the way documents in this domain expect:
// dd.mm.yyyy, optionally with a time suffix.
func FormatDate(t time.Time, withTime bool) string {
	if withTime {
		return t.Format("02.01.2006, 15:04")
	}
	return t.Format("02.01.2006")
}

// fullName assembles "Last First Middle", skipping absent parts.
func fullName(user *Identity) string {
	if user == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, part := range []string{user.LastName, user.FirstName, user.MiddleName} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
