package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeservices/internal/database"
	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

func newService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()
	db, err := database.OpenInMemory("catalog_" + t.Name())
	require.NoError(t, err)
	store := repository.NewStore(db)
	return NewService(store.Categories, store.Users, nil), store
}

func TestEnsureDefaultsOnlySeedsEmptyCatalog(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx, []string{"Cleaning", " Plumbing ", "", "Cleaning"}))

	list, err := svc.ListCategories(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cleaning", list[0].Name)
	assert.Equal(t, "Plumbing", list[1].Name)

	require.NoError(t, svc.EnsureDefaults(ctx, []string{"Moving"}))
	list, err = svc.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeactivateCategoryHidesItFromPublicList(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Painting", BasePrice: 4000})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Painting"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	off := false
	updated, err := svc.UpdateCategory(ctx, c.ID, UpdateCategoryRequest{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	public, err := svc.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = store.Categories.GetActiveByName(ctx, "Painting")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateCategory(ctx, "missing", UpdateCategoryRequest{IsActive: &off})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProviderDirectoryAndProfile(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx, []string{"Plumbing", "Gardening"}))

	top := &domain.User{Name: "bob", Email: "bob@example.com", Role: domain.RoleProvider, IsVerified: true, Category: "Plumbing", Rating: 4.8}
	low := &domain.User{Name: "dan", Email: "dan@example.com", Role: domain.RoleProvider, IsVerified: true, Category: "Plumbing", Rating: 3.1}
	pending := &domain.User{Name: "eve", Email: "eve@example.com", Role: domain.RoleProvider, Category: "Plumbing"}
	customer := &domain.User{Name: "alice", Email: "alice@example.com", Role: domain.RoleCustomer, IsVerified: true}
	for _, u := range []*domain.User{low, top, pending, customer} {
		require.NoError(t, store.Users.Create(ctx, u))
	}

	list, err := svc.ListProviders(ctx, "Plumbing")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, top.ID, list[0].ID)

	_, err = svc.GetProvider(ctx, customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	garden := "Gardening"
	from, to := "08:00", "17:30"
	p, err := svc.UpdateProviderProfile(ctx, top.ID, UpdateProviderProfileRequest{Category: &garden, AvailableFrom: &from, AvailableTo: &to})
	require.NoError(t, err)
	assert.Equal(t, "Gardening", p.Category)

	bad := "07:00"
	_, err = svc.UpdateProviderProfile(ctx, top.ID, UpdateProviderProfileRequest{AvailableTo: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)

	unknown := "Astrology"
	_, err = svc.UpdateProviderProfile(ctx, top.ID, UpdateProviderProfileRequest{Category: &unknown})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
