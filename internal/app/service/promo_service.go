package service

import (
	"errors"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPromoNotFound      = errors.New("promo not found")
	ErrPromoImageRequired = errors.New("desktop and mobile images are required")
	ErrPromoTitleMissing  = errors.New("title is required")
)

type PromoInput struct {
	Title        string
	Description  string
	DesktopImage string
	MobileImage  string
	LegacyImage  string // single legacy image, duplicated into both slots
	ProductID    uint
}

type PromoService interface {
	ListPromos(kind model.PromoKind) ([]model.Promo, error)
	GetPromoByID(kind model.PromoKind, id uint) (*model.Promo, error)
	CreatePromo(kind model.PromoKind, input PromoInput) (*model.Promo, error)
	UpdatePromo(kind model.PromoKind, id uint, input PromoInput) (*model.Promo, error)
	DeletePromos(kind model.PromoKind, ids []uint) (int64, error)
}

type promoService struct {
	promoRepo   repository.PromoRepository
	productRepo repository.ProductRepository
}

func NewPromoService(promoRepo repository.PromoRepository, productRepo repository.ProductRepository) PromoService {
	return &promoService{
		promoRepo:   promoRepo,
		productRepo: productRepo,
	}
}

func (s *promoService) ListPromos(kind model.PromoKind) ([]model.Promo, error) {
	return s.promoRepo.FindByKind(kind)
}

func (s *promoService) GetPromoByID(kind model.PromoKind, id uint) (*model.Promo, error) {
	promo, err := s.promoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	if promo.Kind != kind {
		return nil, ErrPromoNotFound
	}
	return promo, nil
}

// resolveImages applies the legacy fallback: a single legacy image fills
// both the desktop and the mobile slot.
func resolveImages(input PromoInput) (desktop, mobile string, err error) {
	desktop, mobile = input.DesktopImage, input.MobileImage
	if desktop == "" && mobile == "" && input.LegacyImage != "" {
		desktop, mobile = input.LegacyImage, input.LegacyImage
	}
	if desktop == "" || mobile == "" {
		return "", "", ErrPromoImageRequired
	}
	return desktop, mobile, nil
}

func (s *promoService) CreatePromo(kind model.PromoKind, input PromoInput) (*model.Promo, error) {
	if input.Title == "" {
		return nil, ErrPromoTitleMissing
	}

	desktop, mobile, err := resolveImages(input)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// the promo slug derives from the linked product's slug, de-duplicated
	// within the kind
	slug, err := uniqueSlug(product.Slug, 0, func(slug string, excludeID uint) (bool, error) {
		return s.promoRepo.SlugExists(kind, slug, excludeID)
	})
	if err != nil {
		return nil, err
	}

	promo := &model.Promo{
		Kind:         kind,
		Title:        input.Title,
		Description:  input.Description,
		Slug:         slug,
		DesktopImage: desktop,
		MobileImage:  mobile,
		ProductID:    product.ID,
	}

	if err := s.promoRepo.Create(promo); err != nil {
		return nil, err
	}

	logger.Info("Promo created", map[string]interface{}{
		"promo_id": promo.ID,
		"kind":     kind,
		"slug":     promo.Slug,
	})
	return promo, nil
}

func (s *promoService) UpdatePromo(kind model.PromoKind, id uint, input PromoInput) (*model.Promo, error) {
	promo, err := s.GetPromoByID(kind, id)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, ErrPromoTitleMissing
	}

	desktop, mobile, err := resolveImages(input)
	if err != nil {
		return nil, err
	}

	if input.ProductID != 0 && input.ProductID != promo.ProductID {
		product, err := s.productRepo.FindByID(input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}

		slug, err := uniqueSlug(product.Slug, id, func(slug string, excludeID uint) (bool, error) {
			return s.promoRepo.SlugExists(kind, slug, excludeID)
		})
		if err != nil {
			return nil, err
		}
		promo.ProductID = product.ID
		promo.Slug = slug
	}

	promo.Title = input.Title
	promo.Description = input.Description
	promo.DesktopImage = desktop
	promo.MobileImage = mobile

	if err := s.promoRepo.Update(promo); err != nil {
		return nil, err
	}

	logger.Info("Promo updated", map[string]interface{}{
		"promo_id": promo.ID,
		"kind":     kind,
	})
	return promo, nil
}

func (s *promoService) DeletePromos(kind model.PromoKind, ids []uint) (int64, error) {
	deleted, err := s.promoRepo.DeleteByIDs(kind, ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrPromoNotFound
	}

	logger.Info("Promos deleted", map[string]interface{}{
		"kind":    kind,
		"deleted": deleted,
	})
	return deleted, nil
}
