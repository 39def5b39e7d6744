package db

import (
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in migration order (reference data first).
func Models() []interface{} {
	return []interface{}{
		&model.Address{},
		&model.OrderStatus{},
		&model.MainCategory{},
		&model.ProductCategory{},
		&model.User{},
		&model.FullAddress{},
		&model.AuthSms{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductComment{},
		&model.Wishlist{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedReferenceData(DB); err != nil {
		logger.Error("Failed to seed reference data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// 기본 카테고리 트리
var defaultCategories = []struct {
	main     string
	children []string
}{
	{main: "의류", children: []string{"여성의류", "남성의류", "유아동"}},
	{main: "생활", children: []string{"생활가전", "가구/인테리어", "생활/가공식품"}},
	{main: "디지털", children: []string{"디지털기기", "게임/취미"}},
	{main: "기타", children: []string{"스포츠/레저", "뷰티/미용", "도서/티켓/음반", "반려동물용품", "기타 중고물품"}},
}

// SeedReferenceData creates order statuses and categories when missing.
// Order statuses are created in a fixed order so 판매중 gets the first id.
func SeedReferenceData(db *gorm.DB) error {
	logger.Info("Seeding reference data...")

	for _, name := range []string{model.OrderStatusSelling, model.OrderStatusReserved, model.OrderStatusSold} {
		status := model.OrderStatus{Name: name}
		if err := db.Where(model.OrderStatus{Name: name}).FirstOrCreate(&status).Error; err != nil {
			logger.Error("Failed to seed order status", err, map[string]interface{}{
				"name": name,
			})
			return err
		}
	}

	for _, tree := range defaultCategories {
		mainName := tree.main
		main := model.MainCategory{Name: mainName}
		if err := db.Where(model.MainCategory{Name: mainName}).FirstOrCreate(&main).Error; err != nil {
			logger.Error("Failed to seed main category", err, map[string]interface{}{
				"name": mainName,
			})
			return err
		}

		for _, name := range tree.children {
			category := model.ProductCategory{Name: name, MainCategoryID: &main.ID}
			if err := db.Where(model.ProductCategory{Name: name}).FirstOrCreate(&category).Error; err != nil {
				logger.Error("Failed to seed product category", err, map[string]interface{}{
					"name": name,
				})
				return err
			}
		}
	}

	logger.Info("Reference data seeded successfully")
	return nil
}
