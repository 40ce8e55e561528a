package service

import (
	"testing"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (CategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	categoryRepo := repository.NewCategoryRepository(testDB)
	return NewCategoryService(categoryRepo), testDB
}

// mustCreateCategory is a test helper for building trees quickly.
func mustCreateCategory(t *testing.T, svc CategoryService, name string, parentID *uint) *model.Category {
	t.Helper()
	category, err := svc.CreateCategory(CategoryInput{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return category
}

func TestCategoryService_CreateCategory_Levels(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	root := mustCreateCategory(t, svc, "Women", nil)
	assert.Equal(t, 1, root.Level)
	assert.Equal(t, "women", root.Slug)

	child := mustCreateCategory(t, svc, "Clothing", &root.ID)
	assert.Equal(t, 2, child.Level)

	leaf := mustCreateCategory(t, svc, "Dresses", &child.ID)
	assert.Equal(t, 3, leaf.Level)

	// a level-3 category cannot take children
	_, err := svc.CreateCategory(CategoryInput{Name: "Too deep", ParentID: &leaf.ID})
	assert.ErrorIs(t, err, ErrCategoryMaxDepth)
}

func TestCategoryService_CreateCategory_Validation(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	_, err := svc.CreateCategory(CategoryInput{Name: ""})
	assert.ErrorIs(t, err, ErrCategoryNameMissing)

	missing := uint(9999)
	_, err = svc.CreateCategory(CategoryInput{Name: "Orphan", ParentID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_SlugDeduplication(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	root := mustCreateCategory(t, svc, "Women", nil)
	first := mustCreateCategory(t, svc, "Shoes", nil)
	second := mustCreateCategory(t, svc, "Shoes", &root.ID)
	third := mustCreateCategory(t, svc, "Shoes", &root.ID)

	assert.Equal(t, "shoes", first.Slug)
	assert.Equal(t, "shoes-1", second.Slug)
	assert.Equal(t, "shoes-2", third.Slug)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	root := mustCreateCategory(t, svc, "Women", nil)
	child := mustCreateCategory(t, svc, "Clothing", &root.ID)

	t.Run("Self parent rejected", func(t *testing.T) {
		_, err := svc.UpdateCategory(root.ID, CategoryInput{Name: "Women", ParentID: &root.ID})
		assert.ErrorIs(t, err, ErrCategorySelfParent)
	})

	t.Run("Direct child as parent rejected", func(t *testing.T) {
		_, err := svc.UpdateCategory(root.ID, CategoryInput{Name: "Women", ParentID: &child.ID})
		assert.ErrorIs(t, err, ErrCategoryChildParent)
	})

	t.Run("Level recomputed on reparent", func(t *testing.T) {
		other := mustCreateCategory(t, svc, "Men", nil)
		moved, err := svc.UpdateCategory(child.ID, CategoryInput{Name: "Clothing", ParentID: &other.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, moved.Level)
		assert.Equal(t, other.ID, *moved.ParentID)
	})

	t.Run("Removing parent resets to root level", func(t *testing.T) {
		moved, err := svc.UpdateCategory(child.ID, CategoryInput{Name: "Clothing"})
		require.NoError(t, err)
		assert.Equal(t, 1, moved.Level)
		assert.Nil(t, moved.ParentID)
	})

	t.Run("Unknown category", func(t *testing.T) {
		_, err := svc.UpdateCategory(9999, CategoryInput{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestCategoryService_DeleteCategories_Cascade(t *testing.T) {
	svc, testDB := setupCategoryServiceTest(t)

	root := mustCreateCategory(t, svc, "Women", nil)
	child := mustCreateCategory(t, svc, "Clothing", &root.ID)
	mustCreateCategory(t, svc, "Dresses", &child.ID)
	mustCreateCategory(t, svc, "Tops", &child.ID)
	survivor := mustCreateCategory(t, svc, "Men", nil)

	deleted, err := svc.DeleteCategories([]uint{root.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	var remaining []model.Category
	require.NoError(t, testDB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)
}

func TestCategoryService_DeleteCategories_UnknownIDs(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	_, err := svc.DeleteCategories([]uint{1234, 5678})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestBuildCategoryTree(t *testing.T) {
	parent := func(id uint) *uint { return &id }

	categories := []model.Category{
		{ID: 1, Name: "Women", Level: 1},
		{ID: 2, Name: "Clothing", Level: 2, ParentID: parent(1)},
		{ID: 3, Name: "Dresses", Level: 3, ParentID: parent(2)},
		{ID: 4, Name: "Tops", Level: 3, ParentID: parent(2)},
		{ID: 5, Name: "Men", Level: 1},
	}
	counts := map[uint]int{
		3: 7,
		4: 2,
		5: 1,
	}

	roots := BuildCategoryTree(categories, counts)
	require.Len(t, roots, 2)

	women := roots[0]
	assert.Equal(t, "Women", women.Name)
	assert.Equal(t, 0, women.ProductCount)
	assert.Equal(t, 9, women.TotalProducts)

	require.Len(t, women.Nodes, 1)
	clothing := women.Nodes[0]
	assert.Equal(t, 9, clothing.TotalProducts)
	require.Len(t, clothing.Nodes, 2)
	assert.Equal(t, 7, clothing.Nodes[0].TotalProducts)

	men := roots[1]
	assert.Equal(t, 1, men.ProductCount)
	assert.Equal(t, 1, men.TotalProducts)
	assert.Empty(t, men.Nodes)
}

func TestBuildCategoryTree_OrphanBecomesRoot(t *testing.T) {
	missing := uint(99)
	categories := []model.Category{
		{ID: 1, Name: "Stray", Level: 2, ParentID: &missing},
	}

	roots := BuildCategoryTree(categories, nil)
	require.Len(t, roots, 1)
	assert.Equal(t, "Stray", roots[0].Name)
}
