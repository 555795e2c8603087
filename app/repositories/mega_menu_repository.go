package repositories

import (
	"context"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MegaMenuRepository interface {
	Upsert(ctx context.Context, collectionID uint, position int, isActive bool) (*models.MegaMenuCollection, error)
	ListActive(ctx context.Context) ([]models.MegaMenuCollection, error)
	ListAll(ctx context.Context) ([]models.MegaMenuCollection, error)
	Remove(ctx context.Context, collectionID uint) error
}

type gormMegaMenuRepository struct {
	db *gorm.DB
}

func NewMegaMenuRepository(db *gorm.DB) MegaMenuRepository {
	return &gormMegaMenuRepository{db: db}
}

// Upsert keeps a single entry per collection: a second call for the same
// collection rewrites its position and active flag.
func (r *gormMegaMenuRepository) Upsert(ctx context.Context, collectionID uint, position int, isActive bool) (*models.MegaMenuCollection, error) {
	var entry models.MegaMenuCollection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCollection(tx, "id = ?", collectionID); err != nil {
			return err
		}

		row := models.MegaMenuCollection{
			CollectionID: collectionID,
			Position:     position,
			IsActive:     isActive,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "is_active", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		return tx.Preload("Collection").Where("collection_id = ?", collectionID).First(&entry).Error
	})
	if err != nil {
		return nil, translate("upsert mega menu entry", err)
	}
	return &entry, nil
}

func (r *gormMegaMenuRepository) ListActive(ctx context.Context) ([]models.MegaMenuCollection, error) {
	var entries []models.MegaMenuCollection
	// hidden collections drop out of the storefront menu with their entry
	err := r.db.WithContext(ctx).
		Select("mega_menu_collections.*").
		Joins("JOIN collections ON collections.id = mega_menu_collections.collection_id").
		Preload("Collection").
		Where("mega_menu_collections.is_active = ? AND collections.is_active = ?", true, true).
		Order("mega_menu_collections.position ASC, mega_menu_collections.id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, translate("list mega menu", err)
	}
	return entries, nil
}

func (r *gormMegaMenuRepository) ListAll(ctx context.Context) ([]models.MegaMenuCollection, error) {
	var entries []models.MegaMenuCollection
	err := r.db.WithContext(ctx).
		Preload("Collection").
		Order("position ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, translate("list mega menu", err)
	}
	return entries, nil
}

func (r *gormMegaMenuRepository) Remove(ctx context.Context, collectionID uint) error {
	res := r.db.WithContext(ctx).Where("collection_id = ?", collectionID).Delete(&models.MegaMenuCollection{})
	if res.Error != nil {
		return translate("remove mega menu entry", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("mega menu entry for collection", collectionID)
	}
	return nil
}
