// Package validate holds the client-side convenience checks applied before
// any network call. The backend independently enforces the same or stricter
// rules; nothing here is a security boundary.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinUsernameLength is the minimum length of a login id at registration.
const MinUsernameLength = 8

// MinPasswordLength is the minimum password length at registration.
const MinPasswordLength = 8

// MaxCommentLength is the maximum comment length in characters.
const MaxCommentLength = 300

var urlPattern = regexp.MustCompile(
	`^(?i)(https?://)?([a-z0-9-]+\.)+[a-z]{2,}(:\d+)?(/\S*)?$`,
)

// Username rejects login ids shorter than MinUsernameLength. No server
// round trip is made for this check.
func Username(v string) error {
	if utf8.RuneCountInString(v) < MinUsernameLength {
		return errors.New("user id must be at least 8 characters")
	}
	return nil
}

// Password accepts only alphanumeric passwords of at least
// MinPasswordLength characters containing at least one letter and one
// digit.
func Password(v string) error {
	if utf8.RuneCountInString(v) < MinPasswordLength {
		return errors.New("password must be at least 8 characters with letters and digits")
	}

	var hasLetter, hasDigit bool
	for _, r := range v {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return errors.New("password may only contain letters and digits")
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain at least one letter and one digit")
	}
	return nil
}

// ProjectURL accepts destination URLs matching a generic host/scheme
// pattern. This is a convenience filter only.
func ProjectURL(v string) error {
	if !urlPattern.MatchString(v) {
		return errors.New("not a valid URL")
	}
	return nil
}

// CommentContent rejects empty or whitespace-only comments and comments
// longer than MaxCommentLength characters.
func CommentContent(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("comment is empty")
	}
	if utf8.RuneCountInString(v) > MaxCommentLength {
		return errors.New("comment must be 300 characters or fewer")
	}
	return nil
}
