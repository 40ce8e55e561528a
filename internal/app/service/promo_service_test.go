package service

import (
	"testing"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type promoServiceFixture struct {
	promos  PromoService
	product *model.Product
}

func setupPromoServiceTest(t *testing.T) promoServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	hashtagRepo := repository.NewHashtagRepository(testDB)
	promoRepo := repository.NewPromoRepository(testDB)

	categories := NewCategoryService(categoryRepo)
	products := NewProductService(productRepo, categoryRepo, hashtagRepo, testDB)

	root := mustCreateCategory(t, categories, "Tech", nil)
	child := mustCreateCategory(t, categories, "Phones", &root.ID)
	leaf := mustCreateCategory(t, categories, "Smartphones", &child.ID)

	product, err := products.CreateProduct(validProductInput("iPhone 15", leaf.ID))
	require.NoError(t, err)

	return promoServiceFixture{
		promos:  NewPromoService(promoRepo, productRepo),
		product: product,
	}
}

func validPromoInput(productID uint) PromoInput {
	return PromoInput{
		Title:        "Spring sale",
		DesktopImage: "/uploads/banners/desktop.jpg",
		MobileImage:  "/uploads/banners/mobile.jpg",
		ProductID:    productID,
	}
}

func TestPromoService_CreatePromo_SlugFromProduct(t *testing.T) {
	f := setupPromoServiceTest(t)

	banner, err := f.promos.CreatePromo(model.PromoBanner, validPromoInput(f.product.ID))
	require.NoError(t, err)
	assert.Equal(t, "iphone-15", banner.Slug)

	// a second banner for the same product gets a suffixed slug
	second, err := f.promos.CreatePromo(model.PromoBanner, validPromoInput(f.product.ID))
	require.NoError(t, err)
	assert.Equal(t, "iphone-15-1", second.Slug)
}

func TestPromoService_SlugUniquePerKind(t *testing.T) {
	f := setupPromoServiceTest(t)

	banner, err := f.promos.CreatePromo(model.PromoBanner, validPromoInput(f.product.ID))
	require.NoError(t, err)

	// kinds do not share a slug namespace
	promotion, err := f.promos.CreatePromo(model.PromoPromotion, validPromoInput(f.product.ID))
	require.NoError(t, err)

	assert.Equal(t, banner.Slug, promotion.Slug)
}

func TestPromoService_LegacyImageFallback(t *testing.T) {
	f := setupPromoServiceTest(t)

	input := PromoInput{
		Title:       "Spring sale",
		LegacyImage: "/uploads/banners/one.jpg",
		ProductID:   f.product.ID,
	}

	promo, err := f.promos.CreatePromo(model.PromoPublication, input)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/banners/one.jpg", promo.DesktopImage)
	assert.Equal(t, "/uploads/banners/one.jpg", promo.MobileImage)
}

func TestPromoService_CreatePromo_Validation(t *testing.T) {
	f := setupPromoServiceTest(t)

	noImages := PromoInput{Title: "Spring sale", ProductID: f.product.ID}
	_, err := f.promos.CreatePromo(model.PromoBanner, noImages)
	assert.ErrorIs(t, err, ErrPromoImageRequired)

	noTitle := validPromoInput(f.product.ID)
	noTitle.Title = ""
	_, err = f.promos.CreatePromo(model.PromoBanner, noTitle)
	assert.ErrorIs(t, err, ErrPromoTitleMissing)

	badProduct := validPromoInput(9999)
	_, err = f.promos.CreatePromo(model.PromoBanner, badProduct)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPromoService_KindScoping(t *testing.T) {
	f := setupPromoServiceTest(t)

	banner, err := f.promos.CreatePromo(model.PromoBanner, validPromoInput(f.product.ID))
	require.NoError(t, err)

	// the banner is invisible through the promotion listing and lookups
	promotions, err := f.promos.ListPromos(model.PromoPromotion)
	require.NoError(t, err)
	assert.Empty(t, promotions)

	_, err = f.promos.GetPromoByID(model.PromoPromotion, banner.ID)
	assert.ErrorIs(t, err, ErrPromoNotFound)

	_, err = f.promos.DeletePromos(model.PromoPromotion, []uint{banner.ID})
	assert.ErrorIs(t, err, ErrPromoNotFound)

	banners, err := f.promos.ListPromos(model.PromoBanner)
	require.NoError(t, err)
	assert.Len(t, banners, 1)
}

func TestPromoService_DeletePromos(t *testing.T) {
	f := setupPromoServiceTest(t)

	first, err := f.promos.CreatePromo(model.PromoBanner, validPromoInput(f.product.ID))
	require.NoError(t, err)
	second, err := f.promos.CreatePromo(model.PromoBanner, validPromoInput(f.product.ID))
	require.NoError(t, err)

	deleted, err := f.promos.DeletePromos(model.PromoBanner, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	banners, err := f.promos.ListPromos(model.PromoBanner)
	require.NoError(t, err)
	assert.Empty(t, banners)
}
