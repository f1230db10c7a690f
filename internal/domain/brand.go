package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits, matching the column sizes of the brands table.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Client-facing messages.
const (
	MsgBrandNotFound = "Marca no encontrada."
	MsgInvalidID     = "El ID debe ser válido."
	MsgIDMismatch    = "El ID de la URL no coincide con el del cuerpo."
)

// Field rule violations reported by Brand.Validate.
var (
	ErrNameBlank        = errors.New("name must not be blank")
	ErrNameTooLong      = fmt.Errorf("name must be at most %d characters", MaxNameLength)
	ErrDescriptionBlank = errors.New("description must not be blank")
	ErrDescriptionLong  = fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
)

// Brand represents a car brand.
type Brand struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the name and description rules. Lengths are counted in
// characters, not bytes.
func (b *Brand) Validate() error {
	switch {
	case strings.TrimSpace(b.Name) == "":
		return ErrNameBlank
	case utf8.RuneCountInString(b.Name) > MaxNameLength:
		return ErrNameTooLong
	case strings.TrimSpace(b.Description) == "":
		return ErrDescriptionBlank
	case utf8.RuneCountInString(b.Description) > MaxDescriptionLength:
		return ErrDescriptionLong
	}
	return nil
}

// IsValidID reports whether id can identify a stored brand.
func IsValidID(id int64) bool {
	return id > 0
}
