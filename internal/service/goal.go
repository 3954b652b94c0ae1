package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BaderVance/BucketListify/internal/model"
	"github.com/BaderVance/BucketListify/internal/repository"
	"github.com/BaderVance/BucketListify/internal/validation"
)

var (
	ErrForbidden = errors.New("not authorized for this goal")
)

type GoalService struct {
	repo        repository.GoalRepository
	profileRepo repository.ProfileRepository
}

func NewGoalService(repo repository.GoalRepository, profileRepo repository.ProfileRepository) *GoalService {
	return &GoalService{
		repo:        repo,
		profileRepo: profileRepo,
	}
}

// CreateGoalInput carries the client-settable fields at creation.
type CreateGoalInput struct {
	Title       string
	Description string
	Category    string
	Deadline    *time.Time
	Location    *model.Point
	IsPublic    *bool
	Progress    int
}

// UpdateGoalInput is the allow-list of mutable fields. Progress, status,
// likes and owner are not reachable through Update.
type UpdateGoalInput struct {
	Title       *string
	Description *string
	Category    *string
	Deadline    *time.Time
	Location    *model.Point
	IsPublic    *bool
}

func (s *GoalService) Create(ownerID string, in CreateGoalInput) (*model.Goal, error) {
	err := validation.ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateCategory(in.Category)
	if err != nil {
		return nil, err
	}
	err = validation.ValidatePoint(in.Location)
	if err != nil {
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Deadline:    in.Deadline,
		IsPublic:    isPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
		Photos:      []model.GoalPhoto{},
		Notes:       []model.GoalNote{},
		Likes:       []string{},
	}
	goal.SetLocation(in.Location)
	goal.SetProgress(in.Progress, now)

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// Owned returns the requester's goals, newest first.
func (s *GoalService) Owned(ownerID string) ([]*model.Goal, error) {
	return s.repo.OwnedBy(ownerID)
}

// PublicFeed returns all public goals, newest first, each annotated with the
// owner's public profile summary.
func (s *GoalService) PublicFeed() ([]*model.Goal, error) {
	goals, err := s.repo.Public()
	if err != nil {
		return nil, err
	}

	err = s.annotateOwners(goals)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Get returns the goal if it is public or owned by the requester.
func (s *GoalService) Get(goalID, requesterID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	if !goal.IsPublic && goal.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	err = s.annotateOwners([]*model.Goal{goal})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Update merges the allow-listed fields into the goal. Ownership is required;
// visibility is irrelevant for writes.
func (s *GoalService) Update(goalID, requesterID string, in UpdateGoalInput) (*model.Goal, error) {
	goal, err := s.ownedGoal(goalID, requesterID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		err = validation.ValidateTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		goal.Title = *in.Title
	}
	if in.Description != nil {
		goal.Description = *in.Description
	}
	if in.Category != nil {
		err = validation.ValidateCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		goal.Category = *in.Category
	}
	if in.Deadline != nil {
		goal.Deadline = in.Deadline
	}
	if in.Location != nil {
		err = validation.ValidatePoint(in.Location)
		if err != nil {
			return nil, err
		}
		goal.SetLocation(in.Location)
	}
	if in.IsPublic != nil {
		goal.IsPublic = *in.IsPublic
	}

	goal.UpdatedAt = time.Now()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes the goal. Repeating a delete fails with not-found.
func (s *GoalService) Delete(goalID, requesterID string) error {
	_, err := s.ownedGoal(goalID, requesterID)
	if err != nil {
		return err
	}

	return s.repo.Delete(goalID)
}

// SetProgress clamps newProgress to [0,100] and recomputes status. The
// completion timestamp is latched on the first transition to 100.
func (s *GoalService) SetProgress(goalID, requesterID string, newProgress int) (*model.Goal, error) {
	goal, err := s.ownedGoal(goalID, requesterID)
	if err != nil {
		return nil, err
	}

	goal.SetProgress(newProgress, time.Now())

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// ToggleLike adds the requester to the like set, or removes them if already
// present. Any user who can read the goal may toggle their own entry.
func (s *GoalService) ToggleLike(goalID, requesterID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	if !goal.IsPublic && goal.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	if goal.LikedBy(requesterID) {
		err = s.repo.RemoveLike(goalID, requesterID)
		if err != nil {
			return nil, err
		}
		likes := make([]string, 0, len(goal.Likes)-1)
		for _, id := range goal.Likes {
			if id != requesterID {
				likes = append(likes, id)
			}
		}
		goal.Likes = likes
	} else {
		err = s.repo.AddLike(goalID, requesterID)
		if err != nil {
			return nil, err
		}
		goal.Likes = append(goal.Likes, requesterID)
	}

	return goal, nil
}

// AddNote appends a note to the goal. Ownership required.
func (s *GoalService) AddNote(goalID, requesterID, content string) (*model.Goal, error) {
	goal, err := s.ownedGoal(goalID, requesterID)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateNoteContent(content)
	if err != nil {
		return nil, err
	}

	note := model.GoalNote{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	err = s.repo.AddNote(&note)
	if err != nil {
		return nil, err
	}

	goal.Notes = append(goal.Notes, note)
	return goal, nil
}

// Nearby returns public goals with a location within radiusKm of the point,
// nearest first. A coarse bounding box narrows the store query; the haversine
// distance refines it.
func (s *GoalService) Nearby(lng, lat, radiusKm float64) ([]*model.Goal, error) {
	err := validation.ValidatePoint(model.NewPoint(lng, lat))
	if err != nil {
		return nil, err
	}
	err = validation.ValidateRadiusKm(radiusKm)
	if err != nil {
		return nil, err
	}

	minLng, maxLng, minLat, maxLat := boundingBox(lng, lat, radiusKm)
	goals, err := s.repo.PublicWithin(minLng, maxLng, minLat, maxLat)
	if err != nil {
		return nil, err
	}

	type scored struct {
		goal *model.Goal
		dist float64
	}
	var within []scored
	for _, g := range goals {
		d := haversineKm(lat, lng, *g.Latitude, *g.Longitude)
		if d <= radiusKm {
			within = append(within, scored{goal: g, dist: d})
		}
	}
	sort.Slice(within, func(i, j int) bool { return within[i].dist < within[j].dist })

	result := make([]*model.Goal, 0, len(within))
	for _, s := range within {
		result = append(result, s.goal)
	}

	err = s.annotateOwners(result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ownedGoal loads the goal and enforces ownership.
func (s *GoalService) ownedGoal(goalID, requesterID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	if goal.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	return goal, nil
}

func (s *GoalService) annotateOwners(goals []*model.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var ownerIDs []string
	for _, g := range goals {
		if !seen[g.OwnerID] {
			seen[g.OwnerID] = true
			ownerIDs = append(ownerIDs, g.OwnerID)
		}
	}

	profiles, err := s.profileRepo.ByUserIDs(ownerIDs)
	if err != nil {
		return err
	}

	for _, g := range goals {
		g.Owner = profiles[g.OwnerID]
	}

	return nil
}

// boundingBox returns a longitude/latitude box that covers a radiusKm circle
// around the point. The box over-covers near the poles; haversine filtering
// trims the corners.
func boundingBox(lng, lat, radiusKm float64) (minLng, maxLng, minLat, maxLat float64) {
	const kmPerDegreeLat = 111.0

	latDelta := radiusKm / kmPerDegreeLat
	lngDelta := 180.0
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat > 1e-6 {
		lngDelta = radiusKm / (kmPerDegreeLat * cosLat)
	}

	minLat = math.Max(lat-latDelta, -90)
	maxLat = math.Min(lat+latDelta, 90)
	minLng = math.Max(lng-lngDelta, -180)
	maxLng = math.Min(lng+lngDelta, 180)
	return
}

// haversineKm calculates the great-circle distance between two points in km.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
