package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/db/testdb"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollectionService(t *testing.T) *CollectionService {
	t.Helper()
	return NewCollectionService(repositories.NewCollectionRepository(testdb.New(t)), helpers.NewValidator())
}

func mustCreate(t *testing.T, svc *CollectionService, name, slug string, parent *models.Collection, active bool) *models.Collection {
	t.Helper()
	in := CreateCollectionInput{Name: name, Slug: slug, IsActive: &active}
	if parent != nil {
		in.ParentID = &parent.ID
	}
	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return c
}

func flatten(nodes []*CollectionNode, out *[]*CollectionNode) {
	for _, n := range nodes {
		*out = append(*out, n)
		flatten(n.Children, out)
	}
}

func TestCollectionServiceCreateValidation(t *testing.T) {
	svc := newCollectionService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCollectionInput{Name: "  ", Slug: "men"})
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "name")

	_, err = svc.Create(ctx, CreateCollectionInput{Name: "Men", Slug: "Men's Wear"})
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "slug")

	created, err := svc.Create(ctx, CreateCollectionInput{Name: " Men ", Slug: "men"})
	require.NoError(t, err)
	assert.Equal(t, "Men", created.Name)
	assert.True(t, created.IsActive)

	_, err = svc.Create(ctx, CreateCollectionInput{Name: "Men 2", Slug: "men"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestListCollectionsTree(t *testing.T) {
	svc := newCollectionService(t)
	ctx := context.Background()

	men := mustCreate(t, svc, "Men", "men", nil, true)
	shirts := mustCreate(t, svc, "Shirts", "men-shirts", men, true)
	mustCreate(t, svc, "Linen", "men-shirts-linen", shirts, true)
	mustCreate(t, svc, "Jeans", "men-jeans", men, true)
	women := mustCreate(t, svc, "Women", "women", nil, true)
	mustCreate(t, svc, "Dresses", "women-dresses", women, true)

	listing, err := svc.ListCollections(ctx, ListCollectionsOptions{})
	require.NoError(t, err)
	require.False(t, listing.Flat)
	require.Len(t, listing.Tree, 2)

	var all []*CollectionNode
	flatten(listing.Tree, &all)
	assert.Len(t, all, 6)

	byID := map[uint]*CollectionNode{}
	for _, n := range all {
		byID[n.ID] = n
	}
	for _, n := range all {
		for _, child := range n.Children {
			require.NotNil(t, child.ParentID)
			assert.Equal(t, n.ID, *child.ParentID)
		}
		// walking up from any node never meets the node again
		seen := map[uint]bool{n.ID: true}
		for p := n.ParentID; p != nil; p = byID[*p].ParentID {
			require.False(t, seen[*p], "cycle through %d", *p)
			seen[*p] = true
		}
	}

	sub, err := svc.ListCollections(ctx, ListCollectionsOptions{ParentID: &men.ID})
	require.NoError(t, err)
	require.Len(t, sub.Tree, 2)
	assert.Equal(t, "men-shirts", sub.Tree[0].Slug)
	require.Len(t, sub.Tree[0].Children, 1)

	flat, err := svc.ListCollections(ctx, ListCollectionsOptions{Flat: true, RootsOnly: true})
	require.NoError(t, err)
	require.True(t, flat.Flat)
	assert.Len(t, flat.Collections, 2)
}

func TestListCollectionsNeverReturnsInactive(t *testing.T) {
	svc := newCollectionService(t)
	ctx := context.Background()

	men := mustCreate(t, svc, "Men", "men", nil, true)
	hidden := mustCreate(t, svc, "Hidden", "hidden", men, false)
	mustCreate(t, svc, "Under Hidden", "under-hidden", hidden, true)
	mustCreate(t, svc, "Archive", "archive", nil, false)
	mustCreate(t, svc, "Shirts", "shirts", men, true)

	for _, flat := range []bool{true, false} {
		listing, err := svc.ListCollections(ctx, ListCollectionsOptions{Flat: flat})
		require.NoError(t, err)

		rows := listing.Collections
		if !flat {
			var nodes []*CollectionNode
			flatten(listing.Tree, &nodes)
			rows = rows[:0]
			for _, n := range nodes {
				rows = append(rows, n.Collection)
			}
		}
		for _, c := range rows {
			assert.True(t, c.IsActive, "flat=%v returned inactive %s", flat, c.Slug)
		}
	}

	// an active collection under an inactive parent is hidden in the tree...
	listing, err := svc.ListCollections(ctx, ListCollectionsOptions{})
	require.NoError(t, err)
	var nodes []*CollectionNode
	flatten(listing.Tree, &nodes)
	assert.Len(t, nodes, 2)

	// ...but still found by search
	listing, err = svc.ListCollections(ctx, ListCollectionsOptions{Search: "under"})
	require.NoError(t, err)
	require.Len(t, listing.Tree, 1)
	assert.Equal(t, "under-hidden", listing.Tree[0].Slug)

	listing, err = svc.ListCollections(ctx, ListCollectionsOptions{IncludeInactive: true})
	require.NoError(t, err)
	nodes = nodes[:0]
	flatten(listing.Tree, &nodes)
	assert.Len(t, nodes, 5)
}

func TestCollectionServiceUpdateParentFromJSON(t *testing.T) {
	svc := newCollectionService(t)
	ctx := context.Background()

	men := mustCreate(t, svc, "Men", "men", nil, true)
	shirts := mustCreate(t, svc, "Shirts", "shirts", men, true)

	var rename UpdateCollectionInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Tops"}`), &rename))
	assert.False(t, rename.ParentID.Set)
	updated, err := svc.Update(ctx, shirts.ID, rename)
	require.NoError(t, err)
	assert.Equal(t, "Tops", updated.Name)
	require.NotNil(t, updated.ParentID)

	var detach UpdateCollectionInput
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id":null}`), &detach))
	assert.True(t, detach.ParentID.Set)
	updated, err = svc.Update(ctx, shirts.ID, detach)
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
	assert.Equal(t, 0, updated.Level)

	var cycle UpdateCollectionInput
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id":`+jsonID(shirts.ID)+`}`), &cycle))
	_, err = svc.Update(ctx, shirts.ID, cycle)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	empty := ""
	_, err = svc.Update(ctx, shirts.ID, UpdateCollectionInput{Name: &empty})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestCollectionServiceGetBySlugWithProducts(t *testing.T) {
	svc := newCollectionService(t)
	ctx := context.Background()

	_, err := svc.GetBySlugWithProducts(ctx, "non-existent-slug")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	mustCreate(t, svc, "Men", "men", nil, true)
	result, err := svc.GetBySlugWithProducts(ctx, "men")
	require.NoError(t, err)
	assert.Equal(t, "men", result.Collection.Slug)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
