package promo

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCode      = errors.New("promo code cannot be empty")
	ErrCodeTooLong    = errors.New("promo code is too long (max 50 characters)")
	ErrInvalidType    = errors.New("invalid discount type")
	ErrNegativeValue  = errors.New("discount value cannot be negative")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

const MaxCodeLength = 50

// Code is a case-sensitive promo code key. Codes are matched exactly as
// stored; "save10" and "SAVE10" are different codes.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Code(""), ErrEmptyCode
	}
	if len(code) > MaxCodeLength {
		return Code(""), ErrCodeTooLong
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	TypePercentage DiscountType = "percentage"
	TypeFixed      DiscountType = "fixed"
)

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) IsValid() bool {
	switch t {
	case TypePercentage, TypeFixed:
		return true
	default:
		return false
	}
}
