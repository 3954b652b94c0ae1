package client

import (
	"context"
	"errors"
	"sync"
)

// Store mirrors the server-side goal collections in the consuming process.
// Each call sets the loading flag and clears the previous error; a success
// merges the response by id (replace-if-present, prepend-if-new for
// creations); a failure records the server message and leaves the collections
// exactly as the last successful fetch left them.
type Store struct {
	mu          sync.Mutex
	api         *Client
	userGoals   []*Goal
	publicGoals []*Goal
	loading     bool
	err         string
}

func NewStore(api *Client) *Store {
	return &Store{api: api}
}

// UserGoals returns a snapshot of the mirrored owned-goal collection.
func (s *Store) UserGoals() []*Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Goal(nil), s.userGoals...)
}

// PublicGoals returns a snapshot of the mirrored public-goal collection.
func (s *Store) PublicGoals() []*Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Goal(nil), s.publicGoals...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message of the last failed call, or "" after a success.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) RefreshUserGoals(ctx context.Context) error {
	s.begin()

	goals, err := s.api.MyGoals(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.userGoals = goals
	s.loading = false
	s.mu.Unlock()
	return nil
}

func (s *Store) RefreshPublicGoals(ctx context.Context) error {
	s.begin()

	goals, err := s.api.PublicGoals(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.publicGoals = goals
	s.loading = false
	s.mu.Unlock()
	return nil
}

func (s *Store) CreateGoal(ctx context.Context, in CreateGoalInput) (*Goal, error) {
	s.begin()

	goal, err := s.api.CreateGoal(ctx, in)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.userGoals = append([]*Goal{goal}, s.userGoals...)
	s.loading = false
	s.mu.Unlock()
	return goal, nil
}

func (s *Store) UpdateGoal(ctx context.Context, goalID string, in UpdateGoalInput) (*Goal, error) {
	s.begin()

	goal, err := s.api.UpdateGoal(ctx, goalID, in)
	if err != nil {
		return nil, s.fail(err)
	}

	s.merge(goal)
	return goal, nil
}

func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	s.begin()

	err := s.api.DeleteGoal(ctx, goalID)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.userGoals = remove(s.userGoals, goalID)
	s.publicGoals = remove(s.publicGoals, goalID)
	s.loading = false
	s.mu.Unlock()
	return nil
}

func (s *Store) SetProgress(ctx context.Context, goalID string, progress int) (*Goal, error) {
	s.begin()

	goal, err := s.api.SetProgress(ctx, goalID, progress)
	if err != nil {
		return nil, s.fail(err)
	}

	s.merge(goal)
	return goal, nil
}

func (s *Store) ToggleLike(ctx context.Context, goalID string) (*Goal, error) {
	s.begin()

	goal, err := s.api.ToggleLike(ctx, goalID)
	if err != nil {
		return nil, s.fail(err)
	}

	s.merge(goal)
	return goal, nil
}

func (s *Store) AddNote(ctx context.Context, goalID, content string) (*Goal, error) {
	s.begin()

	goal, err := s.api.AddNote(ctx, goalID, content)
	if err != nil {
		return nil, s.fail(err)
	}

	s.merge(goal)
	return goal, nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) error {
	// Server-provided messages are surfaced verbatim.
	msg := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}

	s.mu.Lock()
	s.loading = false
	s.err = msg
	s.mu.Unlock()
	return err
}

// merge replaces the goal in whichever mirrored collection already holds it.
func (s *Store) merge(goal *Goal) {
	s.mu.Lock()
	s.userGoals = replace(s.userGoals, goal)
	s.publicGoals = replace(s.publicGoals, goal)
	s.loading = false
	s.mu.Unlock()
}

func replace(goals []*Goal, goal *Goal) []*Goal {
	for i, g := range goals {
		if g.ID == goal.ID {
			goals[i] = goal
		}
	}
	return goals
}

func remove(goals []*Goal, goalID string) []*Goal {
	result := goals[:0]
	for _, g := range goals {
		if g.ID != goalID {
			result = append(result, g)
		}
	}
	return result
}
