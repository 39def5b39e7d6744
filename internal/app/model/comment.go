package model

import "time"

type ProductComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UploaderID uint      `gorm:"not null;index" json:"uploader_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`

	Uploader User    `gorm:"foreignKey:UploaderID" json:"-"`
	Product  Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductComment) TableName() string {
	return "product_comments"
}
