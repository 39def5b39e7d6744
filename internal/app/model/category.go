package model

type MainCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:45;uniqueIndex;not null" json:"name"`

	Categories []ProductCategory `gorm:"foreignKey:MainCategoryID" json:"categories,omitempty"`
}

func (MainCategory) TableName() string {
	return "main_categories"
}

type ProductCategory struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:45;uniqueIndex;not null" json:"name"`
	MainCategoryID *uint  `gorm:"index" json:"main_category_id,omitempty"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
