package services

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/logger"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type ListCollectionsOptions struct {
	ParentID        *uint
	RootsOnly       bool
	CollectionType  string
	IncludeInactive bool
	Flat            bool
	Search          string
}

// CollectionListing holds either a flat list or a tree, depending on Flat.
type CollectionListing struct {
	Flat        bool
	Collections []models.Collection
	Tree        []*CollectionNode
}

type CollectionWithProducts struct {
	Collection *models.Collection `json:"collection"`
	Products   []models.Product   `json:"products"`
}

type CreateCollectionInput struct {
	Name           string `json:"name" validate:"required,max=255"`
	Slug           string `json:"slug" validate:"required,max=255,slug"`
	Description    string `json:"description"`
	ParentID       *uint  `json:"parent_id"`
	CollectionType string `json:"collection_type" validate:"max=50"`
	IsActive       *bool  `json:"is_active"`
	ImageURL       string `json:"image_url" validate:"omitempty,url,max=512"`
}

type UpdateCollectionInput struct {
	Name           *string    `json:"name" validate:"omitempty,max=255"`
	Slug           *string    `json:"slug" validate:"omitempty,max=255,slug"`
	Description    *string    `json:"description"`
	ParentID       OptionalID `json:"parent_id"`
	CollectionType *string    `json:"collection_type" validate:"omitempty,max=50"`
	IsActive       *bool      `json:"is_active"`
	ImageURL       *string    `json:"image_url" validate:"omitempty,url,max=512"`
}

type ProductIDsInput struct {
	ProductIDs []uint `json:"product_ids" validate:"required,min=1,dive,gt=0"`
}

type CollectionService struct {
	repo     repositories.CollectionRepository
	validate *validator.Validate
}

func NewCollectionService(repo repositories.CollectionRepository, validate *validator.Validate) *CollectionService {
	return &CollectionService{repo: repo, validate: validate}
}

// ListCollections returns the matching collections flat or as a tree. In tree
// mode the rows are loaded without the parent restriction and nested from the
// requested parent (or the top level). A collection whose parent was filtered
// out is left out of the tree, unless a search term is set, in which case it
// becomes a root so matches are never hidden.
func (s *CollectionService) ListCollections(ctx context.Context, opts ListCollectionsOptions) (*CollectionListing, error) {
	filter := repositories.CollectionFilter{
		CollectionType:  strings.TrimSpace(opts.CollectionType),
		IncludeInactive: opts.IncludeInactive,
		Search:          strings.TrimSpace(opts.Search),
	}

	if opts.Flat {
		filter.ParentID = opts.ParentID
		filter.RootsOnly = opts.RootsOnly
		rows, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []models.Collection{}
		}
		return &CollectionListing{Flat: true, Collections: rows}, nil
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	promote := filter.Search != "" && opts.ParentID == nil
	return &CollectionListing{Tree: BuildCollectionTree(rows, opts.ParentID, promote)}, nil
}

func (s *CollectionService) GetByID(ctx context.Context, id uint) (*models.Collection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CollectionService) GetBySlugWithProducts(ctx context.Context, slug string) (*CollectionWithProducts, error) {
	collection, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ProductsOf(ctx, collection.ID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return &CollectionWithProducts{Collection: collection, Products: products}, nil
}

func (s *CollectionService) Create(ctx context.Context, input CreateCollectionInput) (*models.Collection, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	input.CollectionType = strings.TrimSpace(input.CollectionType)
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.ValidationErrorFrom(err)
	}

	collection := &models.Collection{
		Name:           input.Name,
		Slug:           input.Slug,
		Description:    input.Description,
		ParentID:       input.ParentID,
		CollectionType: input.CollectionType,
		IsActive:       true,
		ImageURL:       input.ImageURL,
	}
	if input.IsActive != nil {
		collection.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, collection); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithFields(logrus.Fields{
		"collection_id": collection.ID,
		"slug":          collection.Slug,
		"level":         collection.Level,
	}).Info("collection created")
	return collection, nil
}

func (s *CollectionService) Update(ctx context.Context, id uint, input UpdateCollectionInput) (*models.Collection, error) {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	input.Name = trim(input.Name)
	input.Slug = trim(input.Slug)
	input.CollectionType = trim(input.CollectionType)
	input.ImageURL = trim(input.ImageURL)

	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.ValidationErrorFrom(err)
	}
	if input.Name != nil && *input.Name == "" {
		return nil, apperrors.FieldInvalid("name", "name cannot be empty.")
	}
	if input.Slug != nil && *input.Slug == "" {
		return nil, apperrors.FieldInvalid("slug", "slug cannot be empty.")
	}

	updated, err := s.repo.Update(ctx, id, repositories.CollectionChanges{
		Name:           input.Name,
		Slug:           input.Slug,
		Description:    input.Description,
		CollectionType: input.CollectionType,
		IsActive:       input.IsActive,
		ImageURL:       input.ImageURL,
		ParentSet:      input.ParentID.Set,
		ParentID:       input.ParentID.Value,
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithField("collection_id", id).Info("collection updated")
	return updated, nil
}

// Delete removes the collection and everything below it, returning how many
// collections were removed.
func (s *CollectionService) Delete(ctx context.Context, id uint) (int, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	logger.WithContext(ctx).WithFields(logrus.Fields{
		"collection_id": id,
		"removed":       removed,
	}).Info("collection deleted")
	return len(removed), nil
}

func (s *CollectionService) AttachProducts(ctx context.Context, collectionID uint, input ProductIDsInput) error {
	if err := s.validate.Struct(input); err != nil {
		return helpers.ValidationErrorFrom(err)
	}
	return s.repo.AttachProducts(ctx, collectionID, input.ProductIDs)
}

func (s *CollectionService) DetachProducts(ctx context.Context, collectionID uint, input ProductIDsInput) (int64, error) {
	if err := s.validate.Struct(input); err != nil {
		return 0, helpers.ValidationErrorFrom(err)
	}
	if _, err := s.repo.GetByID(ctx, collectionID); err != nil {
		return 0, err
	}
	return s.repo.DetachProducts(ctx, collectionID, input.ProductIDs)
}
