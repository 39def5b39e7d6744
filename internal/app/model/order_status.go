package model

// 판매 상태 기본값 (migrate 시 시드됨)
const (
	OrderStatusSelling  = "판매중"
	OrderStatusReserved = "예약중"
	OrderStatusSold     = "거래완료"
)

type OrderStatus struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:45;uniqueIndex;not null" json:"name"`
}

func (OrderStatus) TableName() string {
	return "order_statuses"
}
