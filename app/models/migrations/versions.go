package migrations

import (
	"errors"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/logger"
	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
}

func All(opts Options) []Migration {
	return []Migration{
		{Version: 1, Name: "create_catalog_tables", Up: createCatalogTables},
		{Version: 2, Name: "create_order_tables", Up: createOrderTables},
		{Version: 3, Name: "backfill_product_slugs", Up: backfillProductSlugs},
		{Version: 4, Name: "backfill_featured_flags", Up: backfillFeaturedFlags},
		{Version: 5, Name: "bootstrap_admin_user", Up: bootstrapAdmin(opts)},
	}
}

func createCatalogTables(tx *gorm.DB) error {
	if err := tx.SetupJoinTable(&models.Product{}, "Collections", &models.ProductCollection{}); err != nil {
		return err
	}
	return tx.AutoMigrate(
		&models.Collection{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.ProductCollection{},
		&models.MegaMenuCollection{},
	)
}

func createOrderTables(tx *gorm.DB) error {
	return tx.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}, &models.Payment{})
}

func backfillProductSlugs(tx *gorm.DB) error {
	var products []models.Product
	err := tx.Select("id", "title", "slug").
		Where("slug = '' OR slug LIKE ?", helpers.PendingSlugPrefix+"%").
		Find(&products).Error
	if err != nil {
		return err
	}
	for _, p := range products {
		slug := helpers.ProductSlug(p.Title, p.ID)
		if err := tx.Model(&models.Product{}).Where("id = ?", p.ID).Update("slug", slug).Error; err != nil {
			return err
		}
	}
	if len(products) > 0 {
		logger.Get().Infof("backfilled %d product slugs", len(products))
	}
	return nil
}

// Products that are both new and on sale become featured when the catalog has
// no featured products yet.
func backfillFeaturedFlags(tx *gorm.DB) error {
	var featured int64
	if err := tx.Model(&models.Product{}).Where("is_featured = ?", true).Count(&featured).Error; err != nil {
		return err
	}
	if featured > 0 {
		return nil
	}
	return tx.Model(&models.Product{}).
		Where("is_new = ? AND is_sale = ?", true, true).
		Update("is_featured", true).Error
}

func bootstrapAdmin(opts Options) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		email := strings.TrimSpace(strings.ToLower(opts.AdminEmail))
		if email == "" || opts.AdminPassword == "" {
			logger.Get().Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap; use the create-admin command later")
			return nil
		}
		return EnsureAdmin(tx, "Administrator", email, opts.AdminPassword)
	}
}

// EnsureAdmin creates an admin user unless one with the same email exists.
func EnsureAdmin(tx *gorm.DB, name, email, password string) error {
	var existing models.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	return tx.Create(&models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}
