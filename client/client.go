// Package client is a Go consumer of the BucketListify goal API. It mirrors
// the server's goal collections the way the web dashboard does: one call per
// HTTP operation, with responses reconciled into a local Store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Goal mirrors the server's goal representation.
type Goal struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	IsPublic    bool       `json:"isPublic"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Location    *Point     `json:"location,omitempty"`
	Photos      []Photo    `json:"photos"`
	Notes       []Note     `json:"notes"`
	Likes       []string   `json:"likes"`
	Owner       *Owner     `json:"owner,omitempty"`
}

// Point is a GeoJSON point: coordinates are [longitude, latitude].
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Photo struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Owner is the public profile summary attached to public listings.
type Owner struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// CreateGoalInput carries the client-settable fields at creation.
type CreateGoalInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Location    *Point     `json:"location,omitempty"`
	IsPublic    *bool      `json:"isPublic,omitempty"`
	Progress    int        `json:"progress,omitempty"`
}

// UpdateGoalInput carries the mutable fields; nil fields are left untouched.
type UpdateGoalInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Location    *Point     `json:"location,omitempty"`
	IsPublic    *bool      `json:"isPublic,omitempty"`
}

// APIError is a non-2xx response from the server, carrying the
// server-provided message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates an API client. token is the bearer credential issued by the
// identity service.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) CreateGoal(ctx context.Context, in CreateGoalInput) (*Goal, error) {
	goal := &Goal{}
	err := c.do(ctx, http.MethodPost, "/goals", in, goal)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (c *Client) MyGoals(ctx context.Context) ([]*Goal, error) {
	var goals []*Goal
	err := c.do(ctx, http.MethodGet, "/goals/my", nil, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *Client) PublicGoals(ctx context.Context) ([]*Goal, error) {
	var goals []*Goal
	err := c.do(ctx, http.MethodGet, "/goals/public", nil, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *Client) NearbyGoals(ctx context.Context, lng, lat, radiusKm float64) ([]*Goal, error) {
	q := url.Values{}
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	var goals []*Goal
	err := c.do(ctx, http.MethodGet, "/goals/nearby?"+q.Encode(), nil, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *Client) Goal(ctx context.Context, goalID string) (*Goal, error) {
	goal := &Goal{}
	err := c.do(ctx, http.MethodGet, "/goals/"+goalID, nil, goal)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (c *Client) UpdateGoal(ctx context.Context, goalID string, in UpdateGoalInput) (*Goal, error) {
	goal := &Goal{}
	err := c.do(ctx, http.MethodPut, "/goals/"+goalID, in, goal)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (c *Client) DeleteGoal(ctx context.Context, goalID string) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+goalID, nil, nil)
}

func (c *Client) SetProgress(ctx context.Context, goalID string, progress int) (*Goal, error) {
	body := map[string]int{"progress": progress}
	goal := &Goal{}
	err := c.do(ctx, http.MethodPatch, "/goals/"+goalID+"/progress", body, goal)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (c *Client) ToggleLike(ctx context.Context, goalID string) (*Goal, error) {
	goal := &Goal{}
	err := c.do(ctx, http.MethodPost, "/goals/"+goalID+"/like", struct{}{}, goal)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (c *Client) AddNote(ctx context.Context, goalID, content string) (*Goal, error) {
	body := map[string]string{"content": content}
	goal := &Goal{}
	err := c.do(ctx, http.MethodPost, "/goals/"+goalID+"/notes", body, goal)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
