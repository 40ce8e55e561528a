package service

import (
	"testing"

	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBrandServiceTest(t *testing.T) BrandService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewBrandService(repository.NewBrandRepository(testDB))
}

func TestBrandService_CreateBrand(t *testing.T) {
	svc := setupBrandServiceTest(t)

	brand, err := svc.CreateBrand(BrandInput{Name: "  Maison Lumen  ", Image: "/brands/lumen.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Maison Lumen", brand.Name)

	t.Run("Duplicate name", func(t *testing.T) {
		_, err := svc.CreateBrand(BrandInput{Name: "Maison Lumen"})
		assert.ErrorIs(t, err, ErrBrandNameExists)
	})

	t.Run("Blank name", func(t *testing.T) {
		_, err := svc.CreateBrand(BrandInput{Name: "   "})
		assert.ErrorIs(t, err, ErrBrandNameMissing)
	})
}

func TestBrandService_UpdateBrand(t *testing.T) {
	svc := setupBrandServiceTest(t)

	brand, err := svc.CreateBrand(BrandInput{Name: "Maison Lumen", Image: "/brands/lumen.jpg"})
	require.NoError(t, err)
	other, err := svc.CreateBrand(BrandInput{Name: "Atelier Nord"})
	require.NoError(t, err)

	t.Run("Rename keeping the image", func(t *testing.T) {
		updated, err := svc.UpdateBrand(brand.ID, BrandInput{Name: "Maison Lumen Paris"})
		require.NoError(t, err)
		assert.Equal(t, "Maison Lumen Paris", updated.Name)
		assert.Equal(t, "/brands/lumen.jpg", updated.Image)
	})

	t.Run("Name taken by another brand", func(t *testing.T) {
		_, err := svc.UpdateBrand(other.ID, BrandInput{Name: "Maison Lumen Paris"})
		assert.ErrorIs(t, err, ErrBrandNameExists)
	})

	t.Run("Keeping its own name is fine", func(t *testing.T) {
		_, err := svc.UpdateBrand(other.ID, BrandInput{Name: "Atelier Nord"})
		assert.NoError(t, err)
	})

	t.Run("Unknown brand", func(t *testing.T) {
		_, err := svc.UpdateBrand(9999, BrandInput{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrBrandNotFound)
	})
}

func TestBrandService_DeleteBrands(t *testing.T) {
	svc := setupBrandServiceTest(t)

	first, err := svc.CreateBrand(BrandInput{Name: "Maison Lumen"})
	require.NoError(t, err)
	second, err := svc.CreateBrand(BrandInput{Name: "Atelier Nord"})
	require.NoError(t, err)

	deleted, err := svc.DeleteBrands([]uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = svc.DeleteBrands([]uint{9999})
	assert.ErrorIs(t, err, ErrBrandNotFound)
}
