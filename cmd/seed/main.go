package main

import (
	"fmt"
	"log"

	"github.com/karimelh/vitrine-backend/config"
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	"github.com/karimelh/vitrine-backend/internal/db"
)

// Seeds a demo catalogue: a three-level category tree, a few brands and
// products, and one bookable service. Safe to run once on an empty database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	hashtagRepo := repository.NewHashtagRepository(db.GetDB())
	serviceRepo := repository.NewServiceRepository(db.GetDB())

	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, hashtagRepo, db.GetDB())

	if existing, err := categoryRepo.FindAll(); err != nil {
		log.Fatal("Failed to check existing data:", err)
	} else if len(existing) > 0 {
		fmt.Println("Database already contains categories, nothing to do.")
		return
	}

	// level 1 > level 2 > level 3; products attach to the leaves
	tree := map[string]map[string][]string{
		"Women": {
			"Clothing": {"Dresses", "Tops"},
			"Shoes":    {"Sneakers", "Heels"},
		},
		"Men": {
			"Clothing": {"Shirts", "Jackets"},
		},
	}

	leaves := map[string]uint{}
	for rootName, children := range tree {
		root, err := categoryService.CreateCategory(service.CategoryInput{Name: rootName})
		if err != nil {
			log.Fatal("Failed to create category:", err)
		}
		for childName, grandchildren := range children {
			child, err := categoryService.CreateCategory(service.CategoryInput{
				Name:     childName,
				ParentID: &root.ID,
			})
			if err != nil {
				log.Fatal("Failed to create category:", err)
			}
			for _, leafName := range grandchildren {
				leaf, err := categoryService.CreateCategory(service.CategoryInput{
					Name:     leafName,
					ParentID: &child.ID,
				})
				if err != nil {
					log.Fatal("Failed to create category:", err)
				}
				leaves[rootName+"/"+childName+"/"+leafName] = leaf.ID
			}
		}
	}
	fmt.Printf("Created %d leaf categories\n", len(leaves))

	brand := &model.Brand{Name: "Maison Lumen"}
	if err := brandRepo.Create(brand); err != nil {
		log.Fatal("Failed to create brand:", err)
	}

	products := []service.ProductInput{
		{
			Name:        "Linen summer dress",
			Description: "Light linen dress, made in Portugal.",
			Price:       89.90,
			Stock:       12,
			IsNew:       true,
			IsPublished: true,
			CategoryID:  leaves["Women/Clothing/Dresses"],
			BrandID:     &brand.ID,
			Images:      []string{"/uploads/products/linen-dress.jpg"},
			Hashtags:    []string{"summer", "linen"},
		},
		{
			Name:        "Canvas sneakers",
			Description: "Low-top canvas sneakers with rubber sole.",
			Price:       59.00,
			Discount:    10.00,
			Stock:       30,
			IsPublished: true,
			CategoryID:  leaves["Women/Shoes/Sneakers"],
			Images:      []string{"/uploads/products/canvas-sneakers.jpg"},
			Hashtags:    []string{"shoes"},
		},
		{
			Name:        "Oxford shirt",
			Description: "Classic cotton oxford shirt.",
			Price:       45.00,
			Stock:       20,
			IsPublished: true,
			CategoryID:  leaves["Men/Clothing/Shirts"],
			BrandID:     &brand.ID,
			Images:      []string{"/uploads/products/oxford-shirt.jpg"},
		},
	}
	for _, input := range products {
		if _, err := productService.CreateProduct(input); err != nil {
			log.Fatal("Failed to create product:", err)
		}
	}
	fmt.Printf("Created %d products\n", len(products))

	svc := &model.Service{
		Title:   "Personal styling session",
		Details: "One hour in-store session with a stylist.",
		Price:   50.00,
		Images: []model.ServiceImage{
			{URL: "/uploads/services/styling.jpg", Position: 0},
		},
	}
	if err := serviceRepo.Create(svc); err != nil {
		log.Fatal("Failed to create service:", err)
	}

	fmt.Println("Seed completed.")
}
