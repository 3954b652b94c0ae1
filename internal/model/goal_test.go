package model

import (
	"testing"
	"time"
)

func TestSetProgressClampsToRange(t *testing.T) {
	t.Parallel()

	now := time.Now()
	for p := -50; p <= 150; p++ {
		goal := &Goal{}
		goal.SetProgress(p, now)

		want := p
		if want < 0 {
			want = 0
		}
		if want > 100 {
			want = 100
		}

		if goal.Progress != want {
			t.Fatalf("SetProgress(%d) stored %d, want %d", p, goal.Progress, want)
		}
	}
}

func TestSetProgressDerivesStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		progress   int
		wantStatus string
	}{
		{name: "zero is not started", progress: 0, wantStatus: GoalStatusNotStarted},
		{name: "negative clamps to not started", progress: -10, wantStatus: GoalStatusNotStarted},
		{name: "one is in progress", progress: 1, wantStatus: GoalStatusInProgress},
		{name: "ninety nine is in progress", progress: 99, wantStatus: GoalStatusInProgress},
		{name: "hundred is completed", progress: 100, wantStatus: GoalStatusCompleted},
		{name: "overflow clamps to completed", progress: 150, wantStatus: GoalStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &Goal{}
			goal.SetProgress(tt.progress, time.Now())

			if goal.Status != tt.wantStatus {
				t.Errorf("SetProgress(%d) status = %q, want %q", tt.progress, goal.Status, tt.wantStatus)
			}
		})
	}
}

func TestSetProgressLatchesCompletedAt(t *testing.T) {
	t.Parallel()

	goal := &Goal{}
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	goal.SetProgress(100, first)
	if goal.CompletedAt == nil {
		t.Fatal("expected CompletedAt to be set on completion")
	}
	if !goal.CompletedAt.Equal(first) {
		t.Fatalf("CompletedAt = %v, want %v", goal.CompletedAt, first)
	}

	// Repeated completion must not overwrite the timestamp.
	goal.SetProgress(100, later)
	if !goal.CompletedAt.Equal(first) {
		t.Fatalf("CompletedAt overwritten to %v, want %v", goal.CompletedAt, first)
	}

	// Dropping below 100 flips status but keeps the timestamp.
	goal.SetProgress(50, later)
	if goal.Status != GoalStatusInProgress {
		t.Fatalf("status = %q, want %q", goal.Status, GoalStatusInProgress)
	}
	if goal.CompletedAt == nil || !goal.CompletedAt.Equal(first) {
		t.Fatalf("CompletedAt cleared on progress decrease, want %v", first)
	}
}

func TestSetLocation(t *testing.T) {
	t.Parallel()

	goal := &Goal{}

	goal.SetLocation(NewPoint(13.4, 52.5))
	if !goal.HasLocation() {
		t.Fatal("expected goal to have a location")
	}
	if *goal.Longitude != 13.4 || *goal.Latitude != 52.5 {
		t.Fatalf("coordinates = (%v, %v), want (13.4, 52.5)", *goal.Longitude, *goal.Latitude)
	}
	if goal.Location == nil || goal.Location.Type != "Point" {
		t.Fatalf("location = %+v, want GeoJSON point", goal.Location)
	}

	goal.SetLocation(nil)
	if goal.HasLocation() || goal.Location != nil {
		t.Fatal("expected nil point to clear the location")
	}
}

func TestLikedBy(t *testing.T) {
	t.Parallel()

	goal := &Goal{Likes: []string{"user-1", "user-2"}}

	if !goal.LikedBy("user-1") {
		t.Error("expected user-1 to be in the like set")
	}
	if goal.LikedBy("user-3") {
		t.Error("did not expect user-3 in the like set")
	}
}
