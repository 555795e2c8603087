package services

import (
	"context"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/logger"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type MegaMenuEntryInput struct {
	Position int   `json:"position" validate:"gte=0"`
	IsActive *bool `json:"is_active"`
}

type MegaMenuService struct {
	repo     repositories.MegaMenuRepository
	validate *validator.Validate
}

func NewMegaMenuService(repo repositories.MegaMenuRepository, validate *validator.Validate) *MegaMenuService {
	return &MegaMenuService{repo: repo, validate: validate}
}

// UpsertEntry places the collection in the mega menu, or moves it if it is
// already there. Entries are active unless is_active is false.
func (s *MegaMenuService) UpsertEntry(ctx context.Context, collectionID uint, input MegaMenuEntryInput) (*models.MegaMenuCollection, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.ValidationErrorFrom(err)
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	entry, err := s.repo.Upsert(ctx, collectionID, input.Position, active)
	if err != nil {
		return nil, err
	}
	logger.WithContext(ctx).WithFields(logrus.Fields{
		"collection_id": collectionID,
		"position":      input.Position,
		"is_active":     active,
	}).Info("mega menu entry saved")
	return entry, nil
}

func (s *MegaMenuService) ListActive(ctx context.Context) ([]models.MegaMenuCollection, error) {
	entries, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.MegaMenuCollection{}
	}
	return entries, nil
}

func (s *MegaMenuService) ListAll(ctx context.Context) ([]models.MegaMenuCollection, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.MegaMenuCollection{}
	}
	return entries, nil
}

func (s *MegaMenuService) RemoveEntry(ctx context.Context, collectionID uint) error {
	if err := s.repo.Remove(ctx, collectionID); err != nil {
		return err
	}
	logger.WithContext(ctx).WithField("collection_id", collectionID).Info("mega menu entry removed")
	return nil
}
