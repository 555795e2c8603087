package seeders

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/db/fakers"
	"github.com/Rakhulsr/go-catalog/app/logger"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"gorm.io/gorm"
)

var catalogTree = map[string][]string{
	"Men":         {"T-Shirts", "Jeans", "Jackets"},
	"Women":       {"Dresses", "Tops", "Sneakers"},
	"Accessories": {"Caps", "Bags"},
}

var rootOrder = []string{"Men", "Women", "Accessories"}

type Result struct {
	Collections int
	Products    int
	MenuEntries int
}

// DBSeed fills an empty catalog with fake collections, products and a mega
// menu. It does nothing when collections already exist.
func DBSeed(ctx context.Context, db *gorm.DB, products int) (*Result, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.Collection{}).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		logger.Get().Infof("catalog already has %d collections, skipping seed", existing)
		return &Result{}, nil
	}

	collectionRepo := repositories.NewCollectionRepository(db)
	productRepo := repositories.NewProductRepository(db)
	megaMenuRepo := repositories.NewMegaMenuRepository(db)

	res := &Result{}
	var leaves []uint
	for position, rootName := range rootOrder {
		root := fakers.CollectionFaker(rootName, nil)
		if err := collectionRepo.Create(ctx, root); err != nil {
			return nil, err
		}
		res.Collections++

		if _, err := megaMenuRepo.Upsert(ctx, root.ID, position, true); err != nil {
			return nil, err
		}
		res.MenuEntries++

		for _, childName := range catalogTree[rootName] {
			child := fakers.CollectionFaker(childName, root)
			if err := collectionRepo.Create(ctx, child); err != nil {
				return nil, err
			}
			res.Collections++
			leaves = append(leaves, child.ID)
		}
	}

	for i := 0; i < products; i++ {
		product := fakers.ProductFaker()
		collectionIDs := []uint{leaves[i%len(leaves)]}
		if err := productRepo.Create(ctx, product, collectionIDs); err != nil {
			// random skus can collide; skip the product rather than abort
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			return nil, err
		}
		res.Products++
	}

	logger.Get().WithField("collections", res.Collections).
		WithField("products", res.Products).
		WithField("mega_menu", res.MenuEntries).
		Info("seed complete")
	return res, nil
}
