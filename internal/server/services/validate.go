package services

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dkurbatov/goblog/internal/common"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
	maxPasswordLen = 128
	maxTitleLen    = 255
)

func validationError(field, rule string) error {
	return fmt.Errorf("%w: %s %s", common.ErrInvalidInput, field, rule)
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return "", validationError("username", fmt.Sprintf("must be %d..%d chars", minUsernameLen, maxUsernameLen))
	}
	return username, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("email", "must be a valid email")
	}
	return email, nil
}

func checkPassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen || n > maxPasswordLen {
		return validationError("password", fmt.Sprintf("must be %d..%d chars", minPasswordLen, maxPasswordLen))
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLen {
		return "", validationError("title", fmt.Sprintf("must be 1..%d chars", maxTitleLen))
	}
	return title, nil
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", validationError("content", "must not be empty")
	}
	return content, nil
}
