package model

import "time"

// Address is neighborhood reference data keyed by a hierarchical region code
// (시도 2자리 + 시군구 3자리 + 읍면동 5자리).
type Address struct {
	ID           uint    `gorm:"primaryKey" json:"id"`                     // 동네 ID
	Code         string  `gorm:"size:10;uniqueIndex;not null" json:"code"` // 행정구역 코드
	Longitude    float64 `json:"longitude"`                                // 경도
	Latitude     float64 `json:"latitude"`                                 // 위도
	Region       string  `gorm:"size:45;not null" json:"region"`           // 시도 (예: 서울특별시)
	District     string  `gorm:"size:45;not null" json:"district"`         // 시군구 (예: 성북구)
	Neighborhood string  `gorm:"size:45;not null" json:"neighborhood"`     // 읍면동 (예: 삼선동1가)
}

func (Address) TableName() string {
	return "addresses"
}

// TownName is the display name used on listings.
func (a Address) TownName() string {
	return a.District + " " + a.Neighborhood
}

// FullAddress links a user to one of their saved neighborhoods.
type FullAddress struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`         // 사용자 ID
	FullAddressID uint      `gorm:"not null;index" json:"full_address_id"` // 동네 ID
	CreatedAt     time.Time `json:"created_at"`

	User        User    `gorm:"foreignKey:UserID" json:"-"`
	FullAddress Address `gorm:"foreignKey:FullAddressID" json:"full_address"`
}

func (FullAddress) TableName() string {
	return "full_addresses"
}
