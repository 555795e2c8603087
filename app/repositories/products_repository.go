package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductFilter struct {
	Type           string
	PriceMin       *decimal.Decimal
	PriceMax       *decimal.Decimal
	Brands         []string
	Colors         []string
	IsNew          *bool
	IsFeatured     *bool
	CollectionSlug string
	Search         string
	Offset         int
	Limit          int
}

type ProductChanges struct {
	Title           *string
	Slug            *string
	Description     *string
	Price           *decimal.Decimal
	Stock           *int
	Type            *string
	Brand           *string
	Color           *string
	IsNew           *bool
	IsSale          *bool
	IsFeatured      *bool
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
	CollectionIDs   *[]uint
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint) (map[uint]models.Product, error)
	Create(ctx context.Context, product *models.Product, collectionIDs []uint) error
	Update(ctx context.Context, id uint, changes ProductChanges) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	SetFeatured(ctx context.Context, ids []uint, value bool) (int64, error)
	DistinctTypes(ctx context.Context) ([]string, error)
	DistinctBrands(ctx context.Context) ([]string, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db}
}

func (p *productRepository) filtered(ctx context.Context, f ProductFilter) *gorm.DB {
	query := p.db.WithContext(ctx).Model(&models.Product{})

	if f.Type != "" {
		query = query.Where("products.type = ?", f.Type)
	}
	if f.PriceMin != nil {
		query = query.Where("products.price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		query = query.Where("products.price <= ?", *f.PriceMax)
	}
	if len(f.Brands) > 0 {
		query = query.Where("products.brand IN ?", f.Brands)
	}
	if len(f.Colors) > 0 {
		variantColors := p.db.WithContext(ctx).Model(&models.ProductVariant{}).
			Select("product_id").
			Where("color IN ?", f.Colors)
		query = query.Where("products.color IN ? OR products.id IN (?)", f.Colors, variantColors)
	}
	if f.IsNew != nil {
		query = query.Where("products.is_new = ?", *f.IsNew)
	}
	if f.IsFeatured != nil {
		query = query.Where("products.is_featured = ?", *f.IsFeatured)
	}
	if f.Search != "" {
		query = query.Where("LOWER(products.title) LIKE ? ESCAPE '!'", containsPattern(f.Search))
	}
	if f.CollectionSlug != "" {
		query = query.
			Joins("JOIN product_collections pc ON pc.product_id = products.id").
			Joins("JOIN collections c ON c.id = pc.collection_id").
			Where("c.slug = ?", f.CollectionSlug)
	}
	return query
}

func (p *productRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	var total int64
	if err := p.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, translate("count products", err)
	}

	var products []models.Product
	err := p.filtered(ctx, f).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Order("products.created_at DESC").
		Order("products.id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, translate("list products", err)
	}
	return products, total, nil
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return p.load(p.db.WithContext(ctx), id)
}

func (p *productRepository) load(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	err := tx.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Variants").
		Preload("Collections").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, translate("get product", err)
	}
	return &product, nil
}

// FindByIDs loads products with their variants, keyed by id. tx may be nil.
func (p *productRepository) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint) (map[uint]models.Product, error) {
	if tx == nil {
		tx = p.db
	}
	out := make(map[uint]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []models.Product
	if err := tx.WithContext(ctx).Preload("Variants").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translate("find products", err)
	}
	for _, prod := range products {
		out[prod.ID] = prod
	}
	return out, nil
}

// Create inserts the product with its images and variants. Without an
// explicit slug the row is inserted under a placeholder and then given the
// slug derived from its title and id, inside the same transaction.
func (p *productRepository) Create(ctx context.Context, product *models.Product, collectionIDs []uint) error {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		derive := product.Slug == ""
		if derive {
			product.Slug = helpers.PendingSlug()
		} else if err := ensureProductSlugFree(tx, product.Slug, 0); err != nil {
			return err
		}

		product.Collections = nil
		variants := product.Variants
		if err := checkDistinctSkus(variants); err != nil {
			return err
		}
		// variants are inserted on their own so a taken sku fails instead of
		// being claimed by the association upsert
		if err := tx.Omit("Variants").Create(product).Error; err != nil {
			return err
		}
		if len(variants) > 0 {
			for i := range variants {
				variants[i].ProductID = product.ID
			}
			if err := tx.Create(&variants).Error; err != nil {
				return err
			}
			product.Variants = variants
		}

		if derive {
			slug := helpers.ProductSlug(product.Title, product.ID)
			if err := ensureProductSlugFree(tx, slug, product.ID); err != nil {
				return err
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Update("slug", slug).Error; err != nil {
				return err
			}
			product.Slug = slug
		}

		return replaceProductCollections(tx, product.ID, collectionIDs)
	})
	return translate("create product", err)
}

func checkDistinctSkus(variants []models.ProductVariant) error {
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if seen[v.Sku] {
			return apperrors.Conflict(fmt.Sprintf("sku %q is repeated", v.Sku))
		}
		seen[v.Sku] = true
	}
	return nil
}

func (p *productRepository) Update(ctx context.Context, id uint, c ProductChanges) (*models.Product, error) {
	var updated *models.Product
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := p.load(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		setString := func(col string, v *string) {
			if v != nil {
				updates[col] = *v
			}
		}
		setBool := func(col string, v *bool) {
			if v != nil {
				updates[col] = *v
			}
		}

		setString("title", c.Title)
		setString("description", c.Description)
		setString("type", c.Type)
		setString("brand", c.Brand)
		setString("color", c.Color)
		setString("meta_title", c.MetaTitle)
		setString("meta_description", c.MetaDescription)
		setString("meta_keywords", c.MetaKeywords)
		setBool("is_new", c.IsNew)
		setBool("is_sale", c.IsSale)
		setBool("is_featured", c.IsFeatured)
		if c.Price != nil {
			updates["price"] = *c.Price
		}
		if c.Stock != nil {
			updates["stock"] = *c.Stock
		}
		if c.Slug != nil && *c.Slug != current.Slug {
			if err := ensureProductSlugFree(tx, *c.Slug, id); err != nil {
				return err
			}
			updates["slug"] = *c.Slug
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if c.CollectionIDs != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductCollection{}).Error; err != nil {
				return err
			}
			if err := replaceProductCollections(tx, id, *c.CollectionIDs); err != nil {
				return err
			}
		}

		updated, err = p.load(tx, id)
		return err
	})
	if err != nil {
		return nil, translate("update product", err)
	}
	return updated, nil
}

func (p *productRepository) Delete(ctx context.Context, id uint) error {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Limit(1).Find(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("product", id)
		}
		for _, model := range []interface{}{&models.ProductCollection{}, &models.ProductImage{}, &models.ProductVariant{}} {
			if err := tx.Where("product_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&models.Product{}).Error
	})
	return translate("delete product", err)
}

func (p *productRepository) SetFeatured(ctx context.Context, ids []uint, value bool) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	res := p.db.WithContext(ctx).Model(&models.Product{}).Where("id IN ?", ids).Update("is_featured", value)
	if res.Error != nil {
		return 0, translate("set featured", res.Error)
	}
	return res.RowsAffected, nil
}

func (p *productRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	return p.distinct(ctx, "type")
}

func (p *productRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	return p.distinct(ctx, "brand")
}

// column is never user input.
func (p *productRepository) distinct(ctx context.Context, column string) ([]string, error) {
	values := []string{}
	err := p.db.WithContext(ctx).Model(&models.Product{}).
		Where(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", column, column)).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, translate("list product "+column+"s", err)
	}
	return values, nil
}

func ensureProductSlugFree(tx *gorm.DB, slug string, exceptID uint) error {
	var count int64
	query := tx.Model(&models.Product{}).Where("slug = ?", slug)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("product slug " + slug + " is already in use")
	}
	return nil
}

func ensureProductsExist(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := tx.Model(&models.Product{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) != len(ids) {
		have := make(map[uint]bool, len(found))
		for _, id := range found {
			have[id] = true
		}
		for _, id := range ids {
			if !have[id] {
				return apperrors.NotFound("product", id)
			}
		}
	}
	return nil
}

func replaceProductCollections(tx *gorm.DB, productID uint, collectionIDs []uint) error {
	collectionIDs = uniqueIDs(collectionIDs)
	if len(collectionIDs) == 0 {
		return nil
	}
	var found int64
	if err := tx.Model(&models.Collection{}).Where("id IN ?", collectionIDs).Count(&found).Error; err != nil {
		return err
	}
	if int(found) != len(collectionIDs) {
		return apperrors.FieldInvalid("collection_ids", "one or more collections do not exist")
	}
	links := make([]models.ProductCollection, 0, len(collectionIDs))
	for _, cid := range collectionIDs {
		links = append(links, models.ProductCollection{ProductID: productID, CollectionID: cid})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
