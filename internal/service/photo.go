package service

import (
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BaderVance/BucketListify/internal/model"
	"github.com/BaderVance/BucketListify/internal/repository"
	"github.com/BaderVance/BucketListify/internal/storage"
	"github.com/BaderVance/BucketListify/internal/validation"
)

type PhotoService struct {
	repo    repository.GoalRepository
	storage storage.Storage
}

func NewPhotoService(repo repository.GoalRepository, storage storage.Storage) *PhotoService {
	return &PhotoService{
		repo:    repo,
		storage: storage,
	}
}

// Upload validates the image, stores the bytes, and appends a photo entry to
// the goal. Ownership required.
func (s *PhotoService) Upload(goalID, requesterID string, file multipart.File, header *multipart.FileHeader, caption string) (*model.Goal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	if goal.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	err = validation.ValidateCaption(caption)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateFile(header, validation.PhotoConstraints)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	storagePath := path.Join("goals", goal.ID, uuid.New().String()+ext)

	err = s.storage.Save(storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	photo := model.GoalPhoto{
		ID:         uuid.New().String(),
		GoalID:     goal.ID,
		URL:        s.storage.PublicURL(storagePath),
		Caption:    caption,
		UploadedAt: time.Now(),
	}

	err = s.repo.AddPhoto(&photo)
	if err != nil {
		return nil, err
	}

	goal.Photos = append(goal.Photos, photo)
	return goal, nil
}
