package model

import "time"

type Product struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Price             int       `gorm:"not null" json:"price"`
	Description       string    `gorm:"type:text" json:"description"`
	AccessRange       int       `gorm:"default:0" json:"access_range"` // 노출 범위
	Viewed            int       `gorm:"not null;default:0" json:"viewed"`
	ProductCategoryID uint      `gorm:"not null;index" json:"product_category_id"`
	UploaderID        uint      `gorm:"not null;index" json:"uploader_id"`
	AddressID         uint      `gorm:"not null;index" json:"address_id"`
	OrderStatusID     uint      `gorm:"not null;index" json:"order_status_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships (loaded explicitly with Preload)
	ProductCategory ProductCategory `gorm:"foreignKey:ProductCategoryID" json:"-"`
	Uploader        User            `gorm:"foreignKey:UploaderID" json:"-"`
	Address         Address         `gorm:"foreignKey:AddressID" json:"-"`
	OrderStatus     OrderStatus     `gorm:"foreignKey:OrderStatusID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ProductImage rows are ordered by ID; the lowest ID is the thumbnail.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ImageURL  string `gorm:"size:2000;not null" json:"image_url"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
