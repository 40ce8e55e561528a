package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"github.com/karimelh/vitrine-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryMaxDepth    = errors.New("cannot add child to a level-3 category")
	ErrCategorySelfParent  = errors.New("a category cannot be its own parent")
	ErrCategoryChildParent = errors.New("a category cannot be moved under one of its children")
	ErrCategoryNameMissing = errors.New("category name is required")
)

const categoryTreeCacheTTL = 10 * time.Minute

type CategoryInput struct {
	Name        string
	Description string
	Image       string
	ParentID    *uint
}

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetTree() ([]*model.CategoryNode, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*model.Category, error)
	DeleteCategories(ids []uint) (int64, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetTree returns the nested category tree with aggregated product counts,
// served from the Redis cache when warm.
func (s *categoryService) GetTree() ([]*model.CategoryNode, error) {
	ctx := context.Background()

	if cached := redis.GetCategoryTree(ctx); cached != "" {
		var roots []*model.CategoryNode
		if err := json.Unmarshal([]byte(cached), &roots); err == nil {
			return roots, nil
		}
		// a corrupt cache entry is rebuilt below
		redis.InvalidateCategoryTree(ctx)
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.ProductCounts()
	if err != nil {
		return nil, err
	}

	roots := BuildCategoryTree(categories, counts)

	if payload, err := json.Marshal(roots); err == nil {
		redis.SetCategoryTree(ctx, string(payload), categoryTreeCacheTTL)
	}
	return roots, nil
}

// BuildCategoryTree converts the flat category list into nested nodes in two
// linear passes: one building the id->node arena, one attaching each node to
// its parent's children (or the root list when parentless). Working over the
// arena rather than chasing live record pointers also sidesteps accidental
// cycles. Aggregated totals are memoized so each subtree is walked once.
func BuildCategoryTree(categories []model.Category, productCounts map[uint]int) []*model.CategoryNode {
	nodes := make(map[uint]*model.CategoryNode, len(categories))
	for _, category := range categories {
		nodes[category.ID] = &model.CategoryNode{
			Category:     category,
			ProductCount: productCounts[category.ID],
			Nodes:        []*model.CategoryNode{},
		}
	}

	var roots []*model.CategoryNode
	for _, category := range categories {
		node := nodes[category.ID]
		if category.ParentID != nil {
			if parent, ok := nodes[*category.ParentID]; ok {
				parent.Nodes = append(parent.Nodes, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	memo := make(map[uint]int, len(nodes))
	for _, root := range roots {
		root.TotalProducts = countTotalProducts(root, memo)
	}
	return roots
}

func countTotalProducts(node *model.CategoryNode, memo map[uint]int) int {
	if total, ok := memo[node.ID]; ok {
		return total
	}

	total := node.ProductCount
	for _, child := range node.Nodes {
		total += countTotalProducts(child, memo)
	}
	node.TotalProducts = total
	memo[node.ID] = total
	return total
}

func (s *categoryService) CreateCategory(input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, ErrCategoryNameMissing
	}

	logger.Info("Creating category", map[string]interface{}{
		"name":      input.Name,
		"parent_id": input.ParentID,
	})

	slug, err := uniqueSlug(input.Name, 0, s.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	level := 1
	if input.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(*input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		if parent.Level >= model.MaxCategoryLevel {
			logger.Warn("Rejected category create: parent already at max depth", map[string]interface{}{
				"parent_id":    parent.ID,
				"parent_level": parent.Level,
			})
			return nil, ErrCategoryMaxDepth
		}
		level = parent.Level + 1
	}

	category := &model.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
		ParentID:    input.ParentID,
		Level:       level,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	redis.InvalidateCategoryTree(context.Background())

	logger.Info("Category created", map[string]interface{}{
		"category_id":    category.ID,
		"slug":           category.Slug,
		"category_level": category.Level,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, ErrCategoryNameMissing
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	slug, err := uniqueSlug(input.Name, id, s.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	level := 1
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrCategorySelfParent
		}

		// Only direct children are checked here, not the full descendant
		// chain; deeper re-parenting is currently allowed.
		children, err := s.categoryRepo.FindChildren(id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if child.ID == *input.ParentID {
				return nil, ErrCategoryChildParent
			}
		}

		parent, err := s.categoryRepo.FindByID(*input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		if parent.Level >= model.MaxCategoryLevel {
			return nil, ErrCategoryMaxDepth
		}
		level = parent.Level + 1
	}

	category.Name = input.Name
	category.Slug = slug
	category.Description = input.Description
	if input.Image != "" {
		category.Image = input.Image
	}
	category.ParentID = input.ParentID
	// Only this node's level is recomputed on a reparent; descendants keep
	// their stored levels.
	category.Level = level

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	redis.InvalidateCategoryTree(context.Background())

	logger.Info("Category updated", map[string]interface{}{
		"category_id":    category.ID,
		"slug":           category.Slug,
		"category_level": category.Level,
	})
	return category, nil
}

// DeleteCategories removes the given categories together with every
// transitive descendant, collected iteratively over a children-by-parent
// index built from one full fetch, then deleted in a single batch.
func (s *categoryService) DeleteCategories(ids []uint) (int64, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return 0, err
	}

	existing := make(map[uint]bool, len(categories))
	childrenByParent := make(map[uint][]uint)
	for _, category := range categories {
		existing[category.ID] = true
		if category.ParentID != nil {
			childrenByParent[*category.ParentID] = append(childrenByParent[*category.ParentID], category.ID)
		}
	}

	collected := make(map[uint]bool)
	stack := make([]uint, 0, len(ids))
	for _, id := range ids {
		if existing[id] {
			stack = append(stack, id)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if collected[id] {
			continue
		}
		collected[id] = true
		stack = append(stack, childrenByParent[id]...)
	}

	if len(collected) == 0 {
		logger.Warn("Category delete matched nothing", map[string]interface{}{
			"requested_ids": ids,
		})
		return 0, ErrCategoryNotFound
	}

	toDelete := make([]uint, 0, len(collected))
	for id := range collected {
		toDelete = append(toDelete, id)
	}

	deleted, err := s.categoryRepo.DeleteByIDs(toDelete)
	if err != nil {
		return 0, err
	}

	redis.InvalidateCategoryTree(context.Background())

	logger.Info("Categories deleted", map[string]interface{}{
		"requested": len(ids),
		"deleted":   deleted,
	})
	return deleted, nil
}
