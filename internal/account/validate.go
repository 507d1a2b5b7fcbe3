// Package account validates the signup and login forms before they are sent.
package account

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"taskman/internal/service"
)

// MinPasswordLen is the minimum password length in characters.
const MinPasswordLen = 6

// ValidateRegistration checks the signup form. All failures are collected.
func ValidateRegistration(reg service.Registration) error {
	verr := &service.ValidationError{}
	if strings.TrimSpace(reg.Name) == "" {
		verr.Add("name", "Name is required")
	}
	checkEmail(verr, reg.Email)
	checkPassword(verr, reg.Password)
	return verr.Err()
}

// ValidateCredentials checks the login form. All failures are collected.
func ValidateCredentials(creds service.Credentials) error {
	verr := &service.ValidationError{}
	checkEmail(verr, creds.Email)
	checkPassword(verr, creds.Password)
	return verr.Err()
}

// NormalizeEmail trims surrounding whitespace. Case is left alone; the server
// owns identity comparison.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func checkEmail(verr *service.ValidationError, email string) {
	email = NormalizeEmail(email)
	if email == "" {
		verr.Add("email", "Email is required")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		verr.Add("email", "Invalid email format")
		return
	}
	// mail accepts dotless domains like "localhost"; the server does not.
	if domain := email[strings.LastIndex(email, "@")+1:]; !strings.Contains(domain, ".") {
		verr.Add("email", "Invalid email format")
	}
}

func checkPassword(verr *service.ValidationError, password string) {
	switch {
	case password == "":
		verr.Add("password", "Password is required")
	case utf8.RuneCountInString(password) < MinPasswordLen:
		verr.Add("password", "Password must be at least 6 characters")
	}
}
