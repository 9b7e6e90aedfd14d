package entities

import (
	"time"

	"github.com/google/uuid"
)

// MaxPostImages is the hard cap on images attached to a single listing.
const MaxPostImages = 20

// CarCondition describes the advertised condition of a listed car.
type CarCondition string

const (
	CarConditionNew       CarCondition = "new"
	CarConditionUsed      CarCondition = "used"
	CarConditionTouchedUp CarCondition = "touched_up"
)

// Valid reports whether the condition is one of the known values.
func (c CarCondition) Valid() bool {
	switch c {
	case CarConditionNew, CarConditionUsed, CarConditionTouchedUp:
		return true
	}
	return false
}

// CarPost represents a car listing owned by a user account.
// ImageURLs is written in a second phase, after the uploads complete.
type CarPost struct {
	ID          uuid.UUID    `json:"id"`
	OwnerID     uuid.UUID    `json:"ownerId"`
	Title       string       `json:"title"`
	Model       string       `json:"model"`
	Condition   CarCondition `json:"condition"`
	Price       float64      `json:"price"`
	Description string       `json:"description"`
	ImageURLs   []string     `json:"imageURLs"`
	Sold        bool         `json:"sold"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	DeletedAt   *time.Time   `json:"-"`
}

// CreateCarPostInput represents input for creating a listing
type CreateCarPostInput struct {
	Title       string  `json:"title" binding:"required,min=2,max=120"`
	Model       string  `json:"model" binding:"required,min=1,max=120"`
	Condition   string  `json:"condition" binding:"required,oneof=new used touched_up"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Description string  `json:"description" binding:"max=5000"`
}

// FileObject represents an uploaded image stored by the file repository.
type FileObject struct {
	ID          uuid.UUID `json:"id"`
	Bucket      string    `json:"bucket"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
