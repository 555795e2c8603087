package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/db/testdb"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMegaMenuService(t *testing.T) {
	db := testdb.New(t)
	validate := helpers.NewValidator()
	collections := NewCollectionService(repositories.NewCollectionRepository(db), validate)
	svc := NewMegaMenuService(repositories.NewMegaMenuRepository(db), validate)
	ctx := context.Background()

	empty, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	men := mustCreate(t, collections, "Men", "men", nil, true)
	women := mustCreate(t, collections, "Women", "women", nil, true)

	entry, err := svc.UpsertEntry(ctx, men.ID, MegaMenuEntryInput{Position: 1})
	require.NoError(t, err)
	assert.True(t, entry.IsActive)

	off := false
	_, err = svc.UpsertEntry(ctx, women.ID, MegaMenuEntryInput{Position: 0, IsActive: &off})
	require.NoError(t, err)

	_, err = svc.UpsertEntry(ctx, women.ID, MegaMenuEntryInput{Position: -1})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, men.ID, active[0].CollectionID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.RemoveEntry(ctx, men.ID))
	assert.True(t, errors.Is(svc.RemoveEntry(ctx, men.ID), apperrors.ErrNotFound))
}
