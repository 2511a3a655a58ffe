package experience

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle    = errors.New("experience title cannot be empty")
	ErrTitleTooLong  = errors.New("experience title is too long (max 255 characters)")
	ErrNegativePrice = errors.New("price cannot be negative")
)

const MaxTitleLength = 255

// Experience is a bookable catalog item. The booking engine only ever
// reads it; the catalog collaborator owns its lifecycle.
type Experience struct {
	id          uuid.UUID
	title       string
	description string
	location    string
	category    string
	price       int64
	duration    string
	imageURL    string
	rating      float64
	reviewCount int32
	createdAt   time.Time
}

func NewExperience(id uuid.UUID, title, description, location, category string, price int64, duration, imageURL string) (*Experience, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}

	return &Experience{
		id:          id,
		title:       title,
		description: description,
		location:    location,
		category:    category,
		price:       price,
		duration:    duration,
		imageURL:    imageURL,
	}, nil
}

func (e *Experience) ID() uuid.UUID       { return e.id }
func (e *Experience) Title() string       { return e.title }
func (e *Experience) Description() string { return e.description }
func (e *Experience) Location() string    { return e.location }
func (e *Experience) Category() string    { return e.category }

// Price is the per-participant price in whole currency units.
func (e *Experience) Price() int64         { return e.price }
func (e *Experience) Duration() string     { return e.duration }
func (e *Experience) ImageURL() string     { return e.imageURL }
func (e *Experience) Rating() float64      { return e.rating }
func (e *Experience) ReviewCount() int32   { return e.reviewCount }
func (e *Experience) CreatedAt() time.Time { return e.createdAt }
