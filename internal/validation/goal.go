package validation

import (
	"fmt"
	"strings"

	"github.com/BaderVance/BucketListify/internal/model"
)

// Error marks input that failed validation. The API layer maps it to 422.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fail(field, message string) error {
	return &Error{Field: field, Message: message}
}

// ValidateTitle validates a goal title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return fail("title", "title is required")
	}

	if len(trimmed) > 200 {
		return fail("title", "title is too long (max 200 characters)")
	}

	return nil
}

// ValidateCategory validates a goal category against the fixed set
func ValidateCategory(category string) error {
	if category == "" {
		return fail("category", "category is required")
	}

	if !model.Categories[category] {
		return fail("category", fmt.Sprintf("unknown category %q", category))
	}

	return nil
}

// ValidateNoteContent validates note content
func ValidateNoteContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fail("content", "note content is required")
	}

	if len(content) > 5000 {
		return fail("content", "note is too long (max 5000 characters)")
	}

	return nil
}

// ValidateCaption validates an optional photo caption
func ValidateCaption(caption string) error {
	if len(caption) > 300 {
		return fail("caption", "caption is too long (max 300 characters)")
	}
	return nil
}

// ValidatePoint validates a GeoJSON point. A nil point is valid (no location).
func ValidatePoint(p *model.Point) error {
	if p == nil {
		return nil
	}

	if p.Type != "" && p.Type != "Point" {
		return fail("location", fmt.Sprintf("unsupported geometry type %q", p.Type))
	}

	if len(p.Coordinates) != 2 {
		return fail("location", "coordinates must be [longitude, latitude]")
	}

	lng, lat := p.Coordinates[0], p.Coordinates[1]
	if lng < -180 || lng > 180 {
		return fail("location", "longitude must be between -180 and 180")
	}
	if lat < -90 || lat > 90 {
		return fail("location", "latitude must be between -90 and 90")
	}

	return nil
}

// ValidateRadiusKm validates a nearby-search radius
func ValidateRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return fail("radius_km", "radius must be positive")
	}

	if radiusKm > 20000 {
		return fail("radius_km", "radius is too large (max 20000 km)")
	}

	return nil
}
