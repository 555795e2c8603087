package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/logger"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ProductQuery struct {
	Type       string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Brands     []string
	Colors     []string
	IsNew      *bool
	IsFeatured *bool
	Collection string
	Search     string
	IndexFrom  int
	Limit      int
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	PageInfo
}

type ImageInput struct {
	URL      string `json:"url" validate:"required,url,max=512"`
	AltText  string `json:"alt_text" validate:"max=255"`
	Position int    `json:"position" validate:"gte=0"`
}

type VariantInput struct {
	Sku   string           `json:"sku" validate:"required,max=100"`
	Size  string           `json:"size" validate:"max=50"`
	Color string           `json:"color" validate:"max=50"`
	Price *decimal.Decimal `json:"price"`
	Stock int              `json:"stock" validate:"gte=0"`
}

type CreateProductInput struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Slug            string          `json:"slug" validate:"omitempty,max=255,product_slug"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock" validate:"gte=0"`
	Type            string          `json:"type" validate:"max=100"`
	Brand           string          `json:"brand" validate:"max=100"`
	Color           string          `json:"color" validate:"max=50"`
	IsNew           bool            `json:"is_new"`
	IsSale          bool            `json:"is_sale"`
	IsFeatured      bool            `json:"is_featured"`
	MetaTitle       string          `json:"meta_title" validate:"max=255"`
	MetaDescription string          `json:"meta_description" validate:"max=512"`
	MetaKeywords    string          `json:"meta_keywords" validate:"max=512"`
	Images          []ImageInput    `json:"images" validate:"dive"`
	Variants        []VariantInput  `json:"variants" validate:"dive"`
	CollectionIDs   []uint          `json:"collection_ids"`
}

type UpdateProductInput struct {
	Title           *string          `json:"title" validate:"omitempty,max=255"`
	Slug            *string          `json:"slug" validate:"omitempty,max=255,product_slug"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Stock           *int             `json:"stock" validate:"omitempty,gte=0"`
	Type            *string          `json:"type" validate:"omitempty,max=100"`
	Brand           *string          `json:"brand" validate:"omitempty,max=100"`
	Color           *string          `json:"color" validate:"omitempty,max=50"`
	IsNew           *bool            `json:"is_new"`
	IsSale          *bool            `json:"is_sale"`
	IsFeatured      *bool            `json:"is_featured"`
	MetaTitle       *string          `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription *string          `json:"meta_description" validate:"omitempty,max=512"`
	MetaKeywords    *string          `json:"meta_keywords" validate:"omitempty,max=512"`
	CollectionIDs   *[]uint          `json:"collection_ids"`
}

type SetFeaturedInput struct {
	IDs        []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
	IsFeatured *bool  `json:"is_featured" validate:"required"`
}

type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

func NewProductService(repo repositories.ProductRepository, validate *validator.Validate) *ProductService {
	return &ProductService{repo: repo, validate: validate}
}

func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	if q.IndexFrom < 0 {
		return nil, apperrors.FieldInvalid("indexFrom", "indexFrom must be at least 0.")
	}
	switch {
	case q.Limit == 0:
		q.Limit = DefaultPageLimit
	case q.Limit < 0 || q.Limit > MaxPageLimit:
		return nil, apperrors.FieldInvalid("limit", "limit must be between 1 and 100.")
	}
	if q.PriceMin != nil && q.PriceMin.IsNegative() {
		return nil, apperrors.FieldInvalid("priceMin", "priceMin must be at least 0.")
	}
	if q.PriceMin != nil && q.PriceMax != nil && q.PriceMin.GreaterThan(*q.PriceMax) {
		return nil, apperrors.FieldInvalid("priceMax", "priceMax must not be lower than priceMin.")
	}

	products, total, err := s.repo.List(ctx, repositories.ProductFilter{
		Type:           strings.TrimSpace(q.Type),
		PriceMin:       q.PriceMin,
		PriceMax:       q.PriceMax,
		Brands:         cleanValues(q.Brands),
		Colors:         cleanValues(q.Colors),
		IsNew:          q.IsNew,
		IsFeatured:     q.IsFeatured,
		CollectionSlug: strings.TrimSpace(q.Collection),
		Search:         strings.TrimSpace(q.Search),
		Offset:         q.IndexFrom,
		Limit:          q.Limit,
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return &ProductPage{Products: products, PageInfo: Paginate(total, q.IndexFrom, q.Limit)}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)

	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.ValidationErrorFrom(err)
	}
	if err := checkPrice("price", input.Price); err != nil {
		return nil, err
	}
	for i, v := range input.Variants {
		if v.Price != nil {
			if err := checkPrice("variants["+strconv.Itoa(i)+"].price", *v.Price); err != nil {
				return nil, err
			}
		}
	}

	product := &models.Product{
		Title:           input.Title,
		Slug:            input.Slug,
		Description:     input.Description,
		Price:           input.Price.Round(2),
		Stock:           input.Stock,
		Type:            strings.TrimSpace(input.Type),
		Brand:           strings.TrimSpace(input.Brand),
		Color:           strings.TrimSpace(input.Color),
		IsNew:           input.IsNew,
		IsSale:          input.IsSale,
		IsFeatured:      input.IsFeatured,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		MetaKeywords:    input.MetaKeywords,
	}
	for _, img := range input.Images {
		product.Images = append(product.Images, models.ProductImage{
			URL:      img.URL,
			AltText:  img.AltText,
			Position: img.Position,
		})
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Sku:   strings.TrimSpace(v.Sku),
			Size:  v.Size,
			Color: v.Color,
			Price: v.Price,
			Stock: v.Stock,
		})
	}

	if err := s.repo.Create(ctx, product, input.CollectionIDs); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithFields(logrus.Fields{
		"product_id": product.ID,
		"slug":       product.Slug,
	}).Info("product created")
	return s.repo.GetByID(ctx, product.ID)
}

func (s *ProductService) Update(ctx context.Context, id uint, input UpdateProductInput) (*models.Product, error) {
	if input.Title != nil {
		t := strings.TrimSpace(*input.Title)
		input.Title = &t
	}
	if input.Slug != nil {
		sl := strings.TrimSpace(*input.Slug)
		input.Slug = &sl
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.ValidationErrorFrom(err)
	}
	if input.Title != nil && *input.Title == "" {
		return nil, apperrors.FieldInvalid("title", "title cannot be empty.")
	}
	if input.Slug != nil && *input.Slug == "" {
		return nil, apperrors.FieldInvalid("slug", "slug cannot be empty.")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, apperrors.FieldInvalid("stock", "stock must be at least 0.")
	}
	var price *decimal.Decimal
	if input.Price != nil {
		if err := checkPrice("price", *input.Price); err != nil {
			return nil, err
		}
		p := input.Price.Round(2)
		price = &p
	}

	updated, err := s.repo.Update(ctx, id, repositories.ProductChanges{
		Title:           input.Title,
		Slug:            input.Slug,
		Description:     input.Description,
		Price:           price,
		Stock:           input.Stock,
		Type:            input.Type,
		Brand:           input.Brand,
		Color:           input.Color,
		IsNew:           input.IsNew,
		IsSale:          input.IsSale,
		IsFeatured:      input.IsFeatured,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		MetaKeywords:    input.MetaKeywords,
		CollectionIDs:   input.CollectionIDs,
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithField("product_id", id).Info("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithContext(ctx).WithField("product_id", id).Info("product deleted")
	return nil
}

// SetFeatured toggles is_featured on every listed product and reports how
// many rows changed.
func (s *ProductService) SetFeatured(ctx context.Context, input SetFeaturedInput) (int64, error) {
	if err := s.validate.Struct(input); err != nil {
		return 0, helpers.ValidationErrorFrom(err)
	}
	return s.repo.SetFeatured(ctx, input.IDs, *input.IsFeatured)
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctTypes(ctx)
}

func (s *ProductService) Brands(ctx context.Context) ([]string, error) {
	return s.repo.DistinctBrands(ctx)
}

func checkPrice(field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return apperrors.FieldInvalid(field, field+" must be at least 0.")
	}
	return nil
}

func cleanValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
