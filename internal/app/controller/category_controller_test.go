package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryControllerTest(t *testing.T) (*gin.Engine, service.CategoryService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(testDB))
	controller := NewCategoryController(categoryService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/categories", controller.GetTree)
	router.GET("/categories/:slug", controller.GetCategoryBySlug)
	router.POST("/categories", controller.CreateCategory)
	router.PUT("/categories/:id", controller.UpdateCategory)
	router.DELETE("/categories", controller.DeleteCategories)

	return router, categoryService
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCategoryController_CreateCategory(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	w := postJSON(t, router, "/categories", gin.H{"name": "Women"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	category := response["category"].(map[string]interface{})
	assert.Equal(t, "Women", category["name"])
	assert.Equal(t, "women", category["slug"])
	assert.Equal(t, float64(1), category["level"])
}

func TestCategoryController_CreateCategory_DepthLimit(t *testing.T) {
	router, categoryService := setupCategoryControllerTest(t)

	root, err := categoryService.CreateCategory(service.CategoryInput{Name: "Women"})
	require.NoError(t, err)
	child, err := categoryService.CreateCategory(service.CategoryInput{Name: "Clothing", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := categoryService.CreateCategory(service.CategoryInput{Name: "Dresses", ParentID: &child.ID})
	require.NoError(t, err)

	w := postJSON(t, router, "/categories", gin.H{"name": "Too deep", "parent_id": leaf.ID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot add child to a level-3 category")
}

func TestCategoryController_CreateCategory_InvalidBody(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	w := postJSON(t, router, "/categories", gin.H{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryController_GetTree(t *testing.T) {
	router, categoryService := setupCategoryControllerTest(t)

	root, err := categoryService.CreateCategory(service.CategoryInput{Name: "Women"})
	require.NoError(t, err)
	_, err = categoryService.CreateCategory(service.CategoryInput{Name: "Clothing", ParentID: &root.ID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	categories := response["categories"].([]interface{})
	require.Len(t, categories, 1)

	children := categories[0].(map[string]interface{})["children"].([]interface{})
	assert.Len(t, children, 1)
}

func TestCategoryController_GetCategoryBySlug_NotFound(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/categories/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryController_DeleteCategories(t *testing.T) {
	router, categoryService := setupCategoryControllerTest(t)

	root, err := categoryService.CreateCategory(service.CategoryInput{Name: "Women"})
	require.NoError(t, err)
	_, err = categoryService.CreateCategory(service.CategoryInput{Name: "Clothing", ParentID: &root.ID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/categories?id=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["deleted"])

	t.Run("Missing ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/categories", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
