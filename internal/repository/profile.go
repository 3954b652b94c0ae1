package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/BaderVance/BucketListify/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	Upsert(profile *model.Profile) error
	ByUserID(userID string) (*model.Profile, error)
	ByUserIDs(userIDs []string) (map[string]*model.Profile, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(profile *model.Profile) error {
	query := `INSERT INTO profiles (user_id, name, avatar_url, updated_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id) DO UPDATE
	          SET name = excluded.name, avatar_url = excluded.avatar_url, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, profile.UserID, profile.Name, profile.AvatarURL, profile.UpdatedAt)
	return err
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}

	return profile, err
}

func (r *profileRepository) ByUserIDs(userIDs []string) (map[string]*model.Profile, error) {
	result := make(map[string]*model.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM profiles WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}

	var profiles []*model.Profile
	err = r.db.Select(&profiles, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		result[p.UserID] = p
	}

	return result, nil
}
