package model

import (
	"time"
)

const (
	GoalStatusNotStarted = "Not Started"
	GoalStatusInProgress = "In Progress"
	GoalStatusCompleted  = "Completed"
)

const (
	CategoryTravel    = "Travel"
	CategorySkills    = "Skills"
	CategoryAdventure = "Adventure"
	CategoryPersonal  = "Personal"
	CategoryCareer    = "Career"
	CategoryHealth    = "Health"
	CategoryOther     = "Other"
)

// Categories is the fixed set of valid goal categories.
var Categories = map[string]bool{
	CategoryTravel:    true,
	CategorySkills:    true,
	CategoryAdventure: true,
	CategoryPersonal:  true,
	CategoryCareer:    true,
	CategoryHealth:    true,
	CategoryOther:     true,
}

// Point is a GeoJSON point: coordinates are [longitude, latitude].
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func NewPoint(lng, lat float64) *Point {
	return &Point{Type: "Point", Coordinates: []float64{lng, lat}}
}

type Goal struct {
	ID          string     `db:"id" json:"id"`
	OwnerID     string     `db:"owner_id" json:"ownerId"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	Deadline    *time.Time `db:"deadline" json:"deadline,omitempty"`
	Status      string     `db:"status" json:"status"`
	Progress    int        `db:"progress" json:"progress"`
	Longitude   *float64   `db:"longitude" json:"-"`
	Latitude    *float64   `db:"latitude" json:"-"`
	IsPublic    bool       `db:"is_public" json:"isPublic"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`

	Location *Point      `db:"-" json:"location,omitempty"`
	Photos   []GoalPhoto `db:"-" json:"photos"`
	Notes    []GoalNote  `db:"-" json:"notes"`
	Likes    []string    `db:"-" json:"likes"`
	Owner    *Profile    `db:"-" json:"owner,omitempty"`
}

type GoalPhoto struct {
	ID         string    `db:"id" json:"id"`
	GoalID     string    `db:"goal_id" json:"-"`
	URL        string    `db:"url" json:"url"`
	Caption    string    `db:"caption" json:"caption"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}

type GoalNote struct {
	ID        string    `db:"id" json:"id"`
	GoalID    string    `db:"goal_id" json:"-"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SetProgress clamps p to [0,100] and derives status from the result.
// CompletedAt is set on the first transition to 100 and never cleared or
// overwritten afterwards, even if progress later drops below 100.
func (g *Goal) SetProgress(p int, now time.Time) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	g.Progress = p

	switch {
	case p == 100:
		g.Status = GoalStatusCompleted
		if g.CompletedAt == nil {
			g.CompletedAt = &now
		}
	case p > 0:
		g.Status = GoalStatusInProgress
	default:
		g.Status = GoalStatusNotStarted
	}

	g.UpdatedAt = now
}

// SetLocation keeps the GeoJSON view and the stored coordinate pair in sync.
// A nil point clears the location.
func (g *Goal) SetLocation(p *Point) {
	if p == nil || len(p.Coordinates) != 2 {
		g.Location = nil
		g.Longitude = nil
		g.Latitude = nil
		return
	}

	lng, lat := p.Coordinates[0], p.Coordinates[1]
	g.Location = NewPoint(lng, lat)
	g.Longitude = &lng
	g.Latitude = &lat
}

// HasLocation reports whether the goal carries a coordinate pair.
func (g *Goal) HasLocation() bool {
	return g.Longitude != nil && g.Latitude != nil
}

// LikedBy reports whether userID is in the like set.
func (g *Goal) LikedBy(userID string) bool {
	for _, id := range g.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
