package booking

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName       = errors.New("guest name cannot be empty")
	ErrNameTooShort    = errors.New("guest name must be at least 2 characters")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPhone    = errors.New("phone must be between 10 and 15 characters")
	ErrInvalidPeople   = errors.New("participants must be at least 1")
	ErrNegativePricing = errors.New("pricing amounts cannot be negative")
)

// Guest is the contact attached to a booking.
type Guest struct {
	firstName string
	lastName  string
	email     string
	phone     string
}

func NewGuest(firstName, lastName, email, phone string) (Guest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if len(firstName) < 2 || len(lastName) < 2 {
		return Guest{}, ErrNameTooShort
	}
	if !strings.Contains(email, "@") {
		return Guest{}, ErrInvalidEmail
	}
	if len(phone) < 10 || len(phone) > 15 {
		return Guest{}, ErrInvalidPhone
	}

	return Guest{
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
	}, nil
}

func (g Guest) FirstName() string { return g.firstName }
func (g Guest) LastName() string  { return g.lastName }
func (g Guest) Email() string     { return g.email }
func (g Guest) Phone() string     { return g.phone }

// Pricing breaks a booking price into its parts. Discount may exceed
// Subtotal for fixed-amount promos; Total is floored at zero.
type Pricing struct {
	subtotal int64
	discount int64
	total    int64
}

func NewPricing(subtotal, discount int64) (Pricing, error) {
	if subtotal < 0 || discount < 0 {
		return Pricing{}, ErrNegativePricing
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	return Pricing{subtotal: subtotal, discount: discount, total: total}, nil
}

func (p Pricing) Subtotal() int64 { return p.subtotal }
func (p Pricing) Discount() int64 { return p.discount }
func (p Pricing) Total() int64    { return p.total }
