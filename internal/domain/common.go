package domain

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/paginator"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
)

var commonPasswords = []string{
	"password", "password1", "12345678", "123456789", "1234567890", "qwertyuiop",
	"qwerty123", "iloveyou", "sunshine", "princess", "football", "baseball",
	"welcome1", "abcdefgh", "abc12345", "11111111", "00000000", "superman",
	"trustno1", "letmein1", "passw0rd", "starwars", "whatever", "1q2w3e4r",
}

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func checkUsername(username string) string {
	if username == "" {
		return "This field is required."
	}

	if utf8.RuneCountInString(username) > maxUsernameLength {
		return "Ensure this value has at most 150 characters."
	}

	if !usernamePattern.MatchString(username) {
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}

	return ""
}

func checkEmail(email string) string {
	if email == "" {
		return ""
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "Enter a valid email address."
	}

	return ""
}

func checkPassword(password, username string) string {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return "This password is too short. It must contain at least 8 characters."
	}

	if strings.Trim(password, "0123456789") == "" {
		return "This password is entirely numeric."
	}

	if username != "" && strings.EqualFold(password, username) {
		return "The password is too similar to the username."
	}

	if slices.Contains(commonPasswords, strings.ToLower(password)) {
		return "This password is too common."
	}

	return ""
}

// checkPostText returns the normalized text and an error message if the text
// is not acceptable.
func checkPostText(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "This field is required."
	}

	return text, ""
}

// safeNext keeps only local absolute paths to avoid open redirects. Browsers
// drop control characters and whitespace from urls, so any of them is refused.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") ||
		strings.HasPrefix(next, "/\\") {
		return fallback
	}

	if strings.IndexFunc(next, func(r rune) bool { return unicode.IsControl(r) || unicode.IsSpace(r) }) >= 0 {
		return fallback
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}

	return next
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(id int64) string {
	return "/posts/" + itoa(id) + "/"
}

func pageSize(ctx context.Context) int {
	if size := xcontext.Configs(ctx).ApiServer.PageSize; size > 0 {
		return size
	}

	return paginator.DefaultPageSize
}

// notFoundOrUnknown converts a repository error into an errorx.Error.
func notFoundOrUnknown(ctx context.Context, err error, msg, object string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.New(errorx.NotFound, "Not found %s", object)
	}

	xcontext.Logger(ctx).Errorf("%s: %v", msg, err)
	return errorx.Unknown
}
