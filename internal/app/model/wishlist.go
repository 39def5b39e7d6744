package model

// Wishlist 찜 항목 (상품-사용자 쌍마다 하나)
type Wishlist struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_wishlists_product_user" json:"product_id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_wishlists_product_user;index" json:"user_id"`
	IsLiked   bool `gorm:"default:true" json:"is_liked"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}
