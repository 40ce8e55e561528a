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
	ErrHashtagNotFound    = errors.New("hashtag not found")
	ErrHashtagNameMissing = errors.New("hashtag name is required")
)

type HashtagService interface {
	ListHashtags() ([]model.Hashtag, error)
	GetHashtagByID(id uint) (*model.Hashtag, error)
	CreateHashtag(name string) (*model.Hashtag, error)
	UpdateHashtag(id uint, name string) (*model.Hashtag, error)
	DeleteHashtags(ids []uint) (int64, error)
}

type hashtagService struct {
	hashtagRepo repository.HashtagRepository
}

func NewHashtagService(hashtagRepo repository.HashtagRepository) HashtagService {
	return &hashtagService{hashtagRepo: hashtagRepo}
}

func (s *hashtagService) ListHashtags() ([]model.Hashtag, error) {
	return s.hashtagRepo.FindAll()
}

func (s *hashtagService) GetHashtagByID(id uint) (*model.Hashtag, error) {
	hashtag, err := s.hashtagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHashtagNotFound
		}
		return nil, err
	}
	return hashtag, nil
}

// CreateHashtag reuses an existing row when the name is already taken
// rather than failing, matching the connect-or-create behaviour used
// when hashtags arrive attached to a product.
func (s *hashtagService) CreateHashtag(name string) (*model.Hashtag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrHashtagNameMissing
	}

	hashtag, err := s.hashtagRepo.FindOrCreateByName(name)
	if err != nil {
		return nil, err
	}

	logger.Info("Hashtag created", map[string]interface{}{
		"hashtag_id": hashtag.ID,
		"name":       hashtag.Name,
	})
	return hashtag, nil
}

func (s *hashtagService) UpdateHashtag(id uint, name string) (*model.Hashtag, error) {
	hashtag, err := s.GetHashtagByID(id)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrHashtagNameMissing
	}

	hashtag.Name = trimmed
	if err := s.hashtagRepo.Update(hashtag); err != nil {
		return nil, err
	}
	return hashtag, nil
}

func (s *hashtagService) DeleteHashtags(ids []uint) (int64, error) {
	deleted, err := s.hashtagRepo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrHashtagNotFound
	}

	logger.Info("Hashtags deleted", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}
