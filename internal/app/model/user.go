package model

import "time"

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`                             // 사용자 ID
	PhoneNumber    string    `gorm:"size:11;uniqueIndex;not null" json:"phone_number"` // 휴대폰 번호 (숫자만, 예: 01012345678)
	Nickname       string    `gorm:"size:45;uniqueIndex;not null" json:"nickname"`     // 닉네임
	Email          *string   `gorm:"size:100" json:"email"`                            // 이메일 (선택)
	Anonymous      bool      `gorm:"default:false" json:"anonymous"`                   // 익명 여부
	ProfilePicture *string   `gorm:"size:2000" json:"profile_picture"`                 // 프로필 사진 URL (선택)
	CreatedAt      time.Time `json:"created_at"`                                       // 생성 시각

	FullAddresses []FullAddress `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
