package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionFilter struct {
	ParentID        *uint
	RootsOnly       bool
	CollectionType  string
	IncludeInactive bool
	Search          string
}

// CollectionChanges is a partial update. Nil fields are left untouched; the
// parent is only changed when ParentSet is true (ParentID nil moves the
// collection to the root).
type CollectionChanges struct {
	Name           *string
	Slug           *string
	Description    *string
	CollectionType *string
	IsActive       *bool
	ImageURL       *string
	ParentSet      bool
	ParentID       *uint
}

type CollectionRepository interface {
	List(ctx context.Context, filter CollectionFilter) ([]models.Collection, error)
	GetByID(ctx context.Context, id uint) (*models.Collection, error)
	GetBySlug(ctx context.Context, slug string) (*models.Collection, error)
	ProductsOf(ctx context.Context, collectionID uint) ([]models.Product, error)
	Create(ctx context.Context, collection *models.Collection) error
	Update(ctx context.Context, id uint, changes CollectionChanges) (*models.Collection, error)
	Delete(ctx context.Context, id uint) ([]uint, error)
	AttachProducts(ctx context.Context, collectionID uint, productIDs []uint) error
	DetachProducts(ctx context.Context, collectionID uint, productIDs []uint) (int64, error)
}

type gormCollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &gormCollectionRepository{db: db}
}

func (r *gormCollectionRepository) List(ctx context.Context, filter CollectionFilter) ([]models.Collection, error) {
	query := r.db.WithContext(ctx).Model(&models.Collection{})

	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CollectionType != "" {
		query = query.Where("collection_type = ?", filter.CollectionType)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!'", containsPattern(filter.Search))
	}
	switch {
	case filter.ParentID != nil:
		query = query.Where("parent_id = ?", *filter.ParentID)
	case filter.RootsOnly:
		query = query.Where("parent_id IS NULL")
	}

	var collections []models.Collection
	if err := query.Order("id ASC").Find(&collections).Error; err != nil {
		return nil, translate("list collections", err)
	}
	return collections, nil
}

func (r *gormCollectionRepository) GetByID(ctx context.Context, id uint) (*models.Collection, error) {
	return findCollection(r.db.WithContext(ctx), "id = ?", id)
}

func (r *gormCollectionRepository) GetBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	return findCollection(r.db.WithContext(ctx), "slug = ?", slug)
}

func findCollection(tx *gorm.DB, cond string, arg interface{}) (*models.Collection, error) {
	var collection models.Collection
	err := tx.Where(cond, arg).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("collection", arg)
		}
		return nil, translate("get collection", err)
	}
	return &collection, nil
}

func (r *gormCollectionRepository) ProductsOf(ctx context.Context, collectionID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN product_collections pc ON pc.product_id = products.id").
		Where("pc.collection_id = ?", collectionID).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Order("products.id ASC").
		Find(&products).Error
	if err != nil {
		return nil, translate("list collection products", err)
	}
	return products, nil
}

func (r *gormCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCollectionSlugFree(tx, collection.Slug, 0); err != nil {
			return err
		}

		collection.Level = 0
		if collection.ParentID != nil {
			parent, err := findCollection(tx, "id = ?", *collection.ParentID)
			if err != nil {
				return parentError(err)
			}
			collection.Level = parent.Level + 1
		}

		return tx.Create(collection).Error
	})
	return translate("create collection", err)
}

func (r *gormCollectionRepository) Update(ctx context.Context, id uint, changes CollectionChanges) (*models.Collection, error) {
	var updated *models.Collection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findCollection(tx, "id = ?", id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if changes.Name != nil {
			updates["name"] = *changes.Name
		}
		if changes.Slug != nil && *changes.Slug != current.Slug {
			if err := ensureCollectionSlugFree(tx, *changes.Slug, id); err != nil {
				return err
			}
			updates["slug"] = *changes.Slug
		}
		if changes.Description != nil {
			updates["description"] = *changes.Description
		}
		if changes.CollectionType != nil {
			updates["collection_type"] = *changes.CollectionType
		}
		if changes.IsActive != nil {
			updates["is_active"] = *changes.IsActive
		}
		if changes.ImageURL != nil {
			updates["image_url"] = *changes.ImageURL
		}

		levelDelta := 0
		if changes.ParentSet {
			newLevel, err := r.checkReparent(tx, id, changes.ParentID)
			if err != nil {
				return err
			}
			updates["parent_id"] = changes.ParentID
			updates["level"] = newLevel
			levelDelta = newLevel - current.Level
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Collection{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if levelDelta != 0 {
			descendants, err := descendantIDs(tx, id)
			if err != nil {
				return err
			}
			if len(descendants) > 0 {
				err = tx.Model(&models.Collection{}).
					Where("id IN ?", descendants).
					Update("level", gorm.Expr("level + ?", levelDelta)).Error
				if err != nil {
					return err
				}
			}
		}

		updated, err = findCollection(tx, "id = ?", id)
		return err
	})
	if err != nil {
		return nil, translate("update collection", err)
	}
	return updated, nil
}

// checkReparent validates moving collection id under parentID and returns the
// collection's new level.
func (r *gormCollectionRepository) checkReparent(tx *gorm.DB, id uint, parentID *uint) (int, error) {
	if parentID == nil {
		return 0, nil
	}
	if *parentID == id {
		return 0, apperrors.FieldInvalid("parent_id", "a collection cannot be its own parent")
	}
	parent, err := findCollection(tx, "id = ?", *parentID)
	if err != nil {
		return 0, parentError(err)
	}
	descendants, err := descendantIDs(tx, id)
	if err != nil {
		return 0, err
	}
	for _, d := range descendants {
		if d == *parentID {
			return 0, apperrors.FieldInvalid("parent_id", "a collection cannot be moved under one of its descendants")
		}
	}
	return parent.Level + 1, nil
}

// Delete removes the collection, all of its descendants, their product links
// and mega-menu entries. It returns the ids that were removed.
func (r *gormCollectionRepository) Delete(ctx context.Context, id uint) ([]uint, error) {
	var removed []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCollection(tx, "id = ?", id); err != nil {
			return err
		}
		descendants, err := descendantIDs(tx, id)
		if err != nil {
			return err
		}
		ids := append([]uint{id}, descendants...)

		if err := tx.Where("collection_id IN ?", ids).Delete(&models.ProductCollection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("collection_id IN ?", ids).Delete(&models.MegaMenuCollection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Collection{}).Error; err != nil {
			return err
		}
		removed = ids
		return nil
	})
	if err != nil {
		return nil, translate("delete collection", err)
	}
	return removed, nil
}

func (r *gormCollectionRepository) AttachProducts(ctx context.Context, collectionID uint, productIDs []uint) error {
	productIDs = uniqueIDs(productIDs)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCollection(tx, "id = ?", collectionID); err != nil {
			return err
		}
		if err := ensureProductsExist(tx, productIDs); err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		links := make([]models.ProductCollection, 0, len(productIDs))
		for _, pid := range productIDs {
			links = append(links, models.ProductCollection{ProductID: pid, CollectionID: collectionID})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
	return translate("attach products", err)
}

func (r *gormCollectionRepository) DetachProducts(ctx context.Context, collectionID uint, productIDs []uint) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("collection_id = ? AND product_id IN ?", collectionID, productIDs).
		Delete(&models.ProductCollection{})
	if res.Error != nil {
		return 0, translate("detach products", res.Error)
	}
	return res.RowsAffected, nil
}

func ensureCollectionSlugFree(tx *gorm.DB, slug string, exceptID uint) error {
	var count int64
	query := tx.Model(&models.Collection{}).Where("slug = ?", slug)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("collection slug " + slug + " is already in use")
	}
	return nil
}

// descendantIDs walks the hierarchy breadth-first below id. The seen set keeps
// the walk finite even if the stored data contains a cycle.
func descendantIDs(tx *gorm.DB, id uint) ([]uint, error) {
	seen := map[uint]bool{id: true}
	var out []uint
	frontier := []uint{id}
	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&models.Collection{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			frontier = append(frontier, c)
		}
	}
	return out, nil
}

func parentError(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.FieldInvalid("parent_id", "parent collection does not exist")
	}
	return err
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
