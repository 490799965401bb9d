// Package validate holds the form rules shared by the CLI controllers and the
// backend handlers. Every error it returns is safe to show to the user.
package validate

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/StellaShiina/inventory-ui/inventory"
)

const (
	MinPasswordLength = 6
	MinUsernameLength = 3
)

var (
	ErrCredentialsRequired = errors.New("Username and password are required")

	ErrTermsNotAccepted  = errors.New("You must accept the terms of use")
	ErrPasswordTooShort  = errors.New("Password must be at least 6 characters")
	ErrPasswordMismatch  = errors.New("Passwords do not match")
	ErrUsernameTooShort  = errors.New("Username must be at least 3 characters")
	ErrUsernameCharset   = errors.New("Username may only contain letters, numbers and underscore")
	ErrSignupIncomplete  = errors.New("All required fields must be filled in")
	ErrEmailInvalid      = errors.New("Invalid email")
	ErrItemIncomplete    = errors.New("All fields are required")
	ErrQuantityNotNumber = errors.New("Quantity must be a whole number")
	ErrValueNotNumber    = errors.New("Value must be a number")
	ErrQuantityPositive  = errors.New("Quantity must be greater than zero")
	ErrValueNegative     = errors.New("Value cannot be negative")
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Login checks that both credentials are present. The username is expected
// to be trimmed already; the password is taken verbatim.
func Login(username, password string) error {
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

// Signup is the registration form as typed by the user.
type Signup struct {
	FullName        string
	Email           string
	Phone           string
	Username        string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

// Normalize trims every field except the two passwords.
func (s Signup) Normalize() Signup {
	s.FullName = strings.TrimSpace(s.FullName)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Username = strings.TrimSpace(s.Username)
	return s
}

// Registration applies the client-side signup rules in order and returns the
// first one that fails.
func Registration(s Signup) error {
	switch {
	case !s.AcceptTerms:
		return ErrTermsNotAccepted
	case utf8.RuneCountInString(s.Password) < MinPasswordLength:
		return ErrPasswordTooShort
	case s.Password != s.ConfirmPassword:
		return ErrPasswordMismatch
	}
	return Username(s.Username)
}

// Username checks the length and character set of a username.
func Username(username string) error {
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if !usernamePattern.MatchString(username) {
		return ErrUsernameCharset
	}
	return nil
}

// Account applies the server-side registration rules.
func Account(fullName, email, username, password string) error {
	if fullName == "" || email == "" || username == "" || password == "" {
		return ErrSignupIncomplete
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return Username(username)
}

// ParseDraft converts item form text into a Draft. Quantity must be an
// integer and value a decimal number; range checks are left to the server.
func ParseDraft(name, itemType, quantity, value string) (inventory.Draft, error) {
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return inventory.Draft{}, ErrQuantityNotNumber
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return inventory.Draft{}, ErrValueNotNumber
	}
	return inventory.Draft{Name: name, ItemType: itemType, Quantity: q, Value: v}, nil
}

// Draft applies the server-side rules for a new item.
func Draft(d inventory.Draft) error {
	if d.Name == "" || d.ItemType == "" {
		return ErrItemIncomplete
	}
	if err := Quantity(d.Quantity); err != nil {
		return err
	}
	return Value(d.Value)
}

func Quantity(q int) error {
	if q <= 0 {
		return ErrQuantityPositive
	}
	return nil
}

func Value(v float64) error {
	if v < 0 {
		return ErrValueNegative
	}
	return nil
}
