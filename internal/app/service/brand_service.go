package service

import (
	"errors"
	"strings"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBrandNotFound    = errors.New("brand not found")
	ErrBrandNameMissing = errors.New("brand name is required")
	ErrBrandNameExists  = errors.New("brand name already exists")
)

type BrandInput struct {
	Name  string
	Image string
}

type BrandService interface {
	ListBrands() ([]model.Brand, error)
	GetBrandByID(id uint) (*model.Brand, error)
	CreateBrand(input BrandInput) (*model.Brand, error)
	UpdateBrand(id uint, input BrandInput) (*model.Brand, error)
	DeleteBrands(ids []uint) (int64, error)
}

type brandService struct {
	brandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{brandRepo: brandRepo}
}

func (s *brandService) ListBrands() ([]model.Brand, error) {
	return s.brandRepo.FindAll()
}

func (s *brandService) GetBrandByID(id uint) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return brand, nil
}

func (s *brandService) CreateBrand(input BrandInput) (*model.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBrandNameMissing
	}

	exists, err := s.brandRepo.NameExists(name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBrandNameExists
	}

	brand := &model.Brand{
		Name:  name,
		Image: input.Image,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}

	logger.Info("Brand created", map[string]interface{}{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})
	return brand, nil
}

func (s *brandService) UpdateBrand(id uint, input BrandInput) (*model.Brand, error) {
	brand, err := s.GetBrandByID(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBrandNameMissing
	}

	exists, err := s.brandRepo.NameExists(name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBrandNameExists
	}

	brand.Name = name
	if input.Image != "" {
		brand.Image = input.Image
	}

	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}

	logger.Info("Brand updated", map[string]interface{}{
		"brand_id": brand.ID,
	})
	return brand, nil
}

func (s *brandService) DeleteBrands(ids []uint) (int64, error) {
	deleted, err := s.brandRepo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrBrandNotFound
	}

	logger.Info("Brands deleted", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}
