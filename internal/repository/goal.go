package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/BaderVance/BucketListify/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	OwnedBy(ownerID string) ([]*model.Goal, error)
	Public() ([]*model.Goal, error)
	PublicWithin(minLng, maxLng, minLat, maxLat float64) ([]*model.Goal, error)
	Update(goal *model.Goal) error
	Delete(goalID string) error
	AddLike(goalID, userID string) error
	RemoveLike(goalID, userID string) error
	AddNote(note *model.GoalNote) error
	AddPhoto(photo *model.GoalPhoto) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, owner_id, title, description, category, deadline, status, progress,
	                             longitude, latitude, is_public, created_at, updated_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.OwnerID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Deadline,
		goal.Status,
		goal.Progress,
		goal.Longitude,
		goal.Latitude,
		goal.IsPublic,
		goal.CreatedAt,
		goal.UpdatedAt,
		goal.CompletedAt,
	)

	return err
}

func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.loadChildren([]*model.Goal{goal})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) OwnedBy(ownerID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`

	err := r.db.Select(&goals, query, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.loadChildren(goals)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Public() ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE is_public = $1 ORDER BY created_at DESC, id DESC`

	err := r.db.Select(&goals, query, true)
	if err != nil {
		return nil, err
	}

	err = r.loadChildren(goals)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// PublicWithin returns public goals whose coordinates fall inside the
// bounding box. Callers refine the box to a true radius.
func (r *goalRepository) PublicWithin(minLng, maxLng, minLat, maxLat float64) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals
	          WHERE is_public = $1
	            AND longitude IS NOT NULL AND latitude IS NOT NULL
	            AND longitude BETWEEN $2 AND $3
	            AND latitude BETWEEN $4 AND $5
	          ORDER BY created_at DESC, id DESC`

	err := r.db.Select(&goals, query, true, minLng, maxLng, minLat, maxLat)
	if err != nil {
		return nil, err
	}

	err = r.loadChildren(goals)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, category = $3, deadline = $4, status = $5, progress = $6,
	              longitude = $7, latitude = $8, is_public = $9, updated_at = $10, completed_at = $11
	          WHERE id = $12`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Deadline,
		goal.Status,
		goal.Progress,
		goal.Longitude,
		goal.Latitude,
		goal.IsPublic,
		goal.UpdatedAt,
		goal.CompletedAt,
		goal.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(goalID string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) AddLike(goalID, userID string) error {
	_, err := r.db.Exec(`INSERT INTO goal_likes (goal_id, user_id) VALUES ($1, $2)`, goalID, userID)
	return err
}

func (r *goalRepository) RemoveLike(goalID, userID string) error {
	_, err := r.db.Exec(`DELETE FROM goal_likes WHERE goal_id = $1 AND user_id = $2`, goalID, userID)
	return err
}

func (r *goalRepository) AddNote(note *model.GoalNote) error {
	query := `INSERT INTO goal_notes (id, goal_id, content, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(query, note.ID, note.GoalID, note.Content, note.CreatedAt)
	return err
}

func (r *goalRepository) AddPhoto(photo *model.GoalPhoto) error {
	query := `INSERT INTO goal_photos (id, goal_id, url, caption, uploaded_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(query, photo.ID, photo.GoalID, photo.URL, photo.Caption, photo.UploadedAt)
	return err
}

// loadChildren batch-loads photos, notes and likes for the given goals and
// rebuilds the GeoJSON location from the stored coordinate pair.
func (r *goalRepository) loadChildren(goals []*model.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	ids := make([]string, 0, len(goals))
	byID := make(map[string]*model.Goal, len(goals))
	for _, g := range goals {
		g.Photos = []model.GoalPhoto{}
		g.Notes = []model.GoalNote{}
		g.Likes = []string{}
		if g.HasLocation() {
			g.Location = model.NewPoint(*g.Longitude, *g.Latitude)
		}
		ids = append(ids, g.ID)
		byID[g.ID] = g
	}

	query, args, err := sqlx.In(`SELECT * FROM goal_photos WHERE goal_id IN (?) ORDER BY uploaded_at ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	var photos []model.GoalPhoto
	err = r.db.Select(&photos, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	for _, p := range photos {
		g := byID[p.GoalID]
		g.Photos = append(g.Photos, p)
	}

	query, args, err = sqlx.In(`SELECT * FROM goal_notes WHERE goal_id IN (?) ORDER BY created_at ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	var notes []model.GoalNote
	err = r.db.Select(&notes, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	for _, n := range notes {
		g := byID[n.GoalID]
		g.Notes = append(g.Notes, n)
	}

	query, args, err = sqlx.In(`SELECT goal_id, user_id FROM goal_likes WHERE goal_id IN (?) ORDER BY created_at ASC`, ids)
	if err != nil {
		return err
	}
	var likes []struct {
		GoalID string `db:"goal_id"`
		UserID string `db:"user_id"`
	}
	err = r.db.Select(&likes, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	for _, l := range likes {
		g := byID[l.GoalID]
		g.Likes = append(g.Likes, l.UserID)
	}

	return nil
}
