package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/db/testdb"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMegaMenuUpsertIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	collections := NewCollectionRepository(db)
	repo := NewMegaMenuRepository(db)
	ctx := context.Background()

	men := createCollection(t, collections, "Men", "men", nil, true)

	first, err := repo.Upsert(ctx, men.ID, 3, true)
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, men.ID, 1, false)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.MegaMenuCollection{}).Where("collection_id = ?", men.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.Position)
	assert.False(t, second.IsActive)
	require.NotNil(t, second.Collection)
	assert.Equal(t, "men", second.Collection.Slug)
}

func TestMegaMenuUpsertUnknownCollection(t *testing.T) {
	repo := NewMegaMenuRepository(testdb.New(t))

	_, err := repo.Upsert(context.Background(), 42, 0, true)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestMegaMenuListActiveOrder(t *testing.T) {
	db := testdb.New(t)
	collections := NewCollectionRepository(db)
	repo := NewMegaMenuRepository(db)
	ctx := context.Background()

	men := createCollection(t, collections, "Men", "men", nil, true)
	women := createCollection(t, collections, "Women", "women", nil, true)
	kids := createCollection(t, collections, "Kids", "kids", nil, true)
	sale := createCollection(t, collections, "Sale", "sale", nil, true)

	_, err := repo.Upsert(ctx, men.ID, 2, true)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, women.ID, 0, true)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, kids.ID, 1, false)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, sale.ID, 2, true)
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	slugs := make([]string, 0, len(active))
	for _, e := range active {
		assert.True(t, e.IsActive)
		slugs = append(slugs, e.Collection.Slug)
	}
	assert.Equal(t, []string{"women", "men", "sale"}, slugs)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "kids", all[1].Collection.Slug)

	require.NoError(t, repo.Remove(ctx, women.ID))
	assert.True(t, errors.Is(repo.Remove(ctx, women.ID), apperrors.ErrNotFound))

	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestMegaMenuListActiveHidesInactiveCollections(t *testing.T) {
	db := testdb.New(t)
	collections := NewCollectionRepository(db)
	repo := NewMegaMenuRepository(db)
	ctx := context.Background()

	men := createCollection(t, collections, "Men", "men", nil, true)
	archive := createCollection(t, collections, "Archive", "archive", nil, false)

	_, err := repo.Upsert(ctx, men.ID, 1, true)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, archive.ID, 0, true)
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "men", active[0].Collection.Slug)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible := true
	_, err = collections.Update(ctx, archive.ID, CollectionChanges{IsActive: &visible})
	require.NoError(t, err)
	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
