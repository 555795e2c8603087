package fakers

import (
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
)

// CollectionFaker builds an unsaved collection named name, placed under
// parent when one is given.
func CollectionFaker(name string, parent *models.Collection) *models.Collection {
	s := slug.Make(name)
	var parentID *uint
	if parent != nil {
		s = parent.Slug + "-" + s
		id := parent.ID
		parentID = &id
	}

	return &models.Collection{
		Name:           name,
		Slug:           s,
		Description:    faker.Sentence(),
		ParentID:       parentID,
		CollectionType: "category",
		IsActive:       true,
		ImageURL:       "https://cdn.example.com/images/collections/" + s + ".jpg",
	}
}
