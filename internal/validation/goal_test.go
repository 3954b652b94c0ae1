package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/BaderVance/BucketListify/internal/model"
)

func TestValidateTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "valid", title: "Skydive over the Alps", wantErr: false},
		{name: "empty", title: "", wantErr: true},
		{name: "whitespace only", title: "   \t", wantErr: true},
		{name: "max length", title: strings.Repeat("a", 200), wantErr: false},
		{name: "too long", title: strings.Repeat("a", 201), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	for category := range model.Categories {
		err := ValidateCategory(category)
		if err != nil {
			t.Errorf("ValidateCategory(%q) error = %v, want nil", category, err)
		}
	}

	for _, category := range []string{"", "travel", "Extreme Sports"} {
		err := ValidateCategory(category)
		if err == nil {
			t.Errorf("ValidateCategory(%q) = nil, want error", category)
		}
	}
}

func TestValidateNoteContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "valid", content: "Booked the flight", wantErr: false},
		{name: "empty", content: "", wantErr: true},
		{name: "whitespace only", content: "  \n ", wantErr: true},
		{name: "too long", content: strings.Repeat("a", 5001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNoteContent(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNoteContent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCaption(t *testing.T) {
	t.Parallel()

	if err := ValidateCaption(""); err != nil {
		t.Errorf("empty caption should be valid, got %v", err)
	}
	if err := ValidateCaption(strings.Repeat("a", 300)); err != nil {
		t.Errorf("300-char caption should be valid, got %v", err)
	}
	if err := ValidateCaption(strings.Repeat("a", 301)); err == nil {
		t.Error("301-char caption should be rejected")
	}
}

func TestValidatePoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		point   *model.Point
		wantErr bool
	}{
		{name: "nil point", point: nil, wantErr: false},
		{name: "valid", point: model.NewPoint(13.405, 52.52), wantErr: false},
		{name: "boundary coordinates", point: model.NewPoint(-180, 90), wantErr: false},
		{name: "missing type accepted", point: &model.Point{Coordinates: []float64{0, 0}}, wantErr: false},
		{name: "wrong geometry type", point: &model.Point{Type: "Polygon", Coordinates: []float64{0, 0}}, wantErr: true},
		{name: "too few coordinates", point: &model.Point{Type: "Point", Coordinates: []float64{13.4}}, wantErr: true},
		{name: "longitude out of range", point: model.NewPoint(181, 0), wantErr: true},
		{name: "latitude out of range", point: model.NewPoint(0, -91), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoint(tt.point)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePoint() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRadiusKm(t *testing.T) {
	t.Parallel()

	for _, radius := range []float64{0, -5, 20001} {
		if err := ValidateRadiusKm(radius); err == nil {
			t.Errorf("ValidateRadiusKm(%v) = nil, want error", radius)
		}
	}
	for _, radius := range []float64{0.5, 50, 20000} {
		if err := ValidateRadiusKm(radius); err != nil {
			t.Errorf("ValidateRadiusKm(%v) error = %v, want nil", radius, err)
		}
	}
}

func TestErrorIsMatchable(t *testing.T) {
	t.Parallel()

	err := ValidateTitle("")

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a *validation.Error", err)
	}
	if verr.Field != "title" {
		t.Errorf("field = %q, want title", verr.Field)
	}
	if verr.Error() != "title: title is required" {
		t.Errorf("Error() = %q", verr.Error())
	}
}
