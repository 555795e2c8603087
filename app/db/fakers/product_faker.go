package fakers

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var (
	productTypes = []string{"t-shirt", "shirt", "jeans", "jacket", "sneakers", "cap"}
	brands       = []string{"Northwind", "Acme", "Bluebird", "Everlane", "Kestrel"}
	colors       = []string{"red", "blue", "black", "white", "green"}
	sizes        = []string{"S", "M", "L", "XL"}
)

// ProductFaker builds an unsaved product. The slug is left empty so the
// repository derives it from the title and id.
func ProductFaker() *models.Product {
	productType := productTypes[rand.Intn(len(productTypes))]
	brand := brands[rand.Intn(len(brands))]
	word := faker.Word()
	title := strings.ToUpper(word[:1]) + word[1:] + " " + brand + " " + productType

	imagePaths := []string{
		"https://cdn.example.com/images/products/1.jpg",
		"https://cdn.example.com/images/products/2.jpg",
		"https://cdn.example.com/images/products/3.jpg",
	}

	numImages := rand.Intn(3) + 1
	images := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		images[i] = models.ProductImage{
			URL:      imagePaths[rand.Intn(len(imagePaths))],
			AltText:  title,
			Position: i,
		}
	}

	color := colors[rand.Intn(len(colors))]
	price := decimal.NewFromFloat(fakePrice())
	skuBase := slug.Make(productType + "-" + uuid.NewString()[:8])

	variants := make([]models.ProductVariant, 0, 2)
	for _, size := range sizes[:rand.Intn(len(sizes))+1] {
		variants = append(variants, models.ProductVariant{
			Sku:   strings.ToUpper(skuBase + "-" + size),
			Size:  size,
			Color: color,
			Stock: rand.Intn(20),
		})
	}

	return &models.Product{
		Title:           title,
		Description:     faker.Paragraph(),
		Price:           price,
		Stock:           rand.Intn(50) + 1,
		Type:            productType,
		Brand:           brand,
		Color:           color,
		IsNew:           rand.Intn(2) == 0,
		IsSale:          rand.Intn(3) == 0,
		MetaTitle:       title,
		MetaDescription: faker.Sentence(),
		MetaKeywords:    strings.Join([]string{productType, brand, color}, ","),
		Images:          images,
		Variants:        variants,
	}
}

func fakePrice() float64 {
	return precision(5+rand.Float64()*math.Pow10(rand.Intn(3)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
