package service

import (
	"time"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
)

const (
	// 매너온도 기본값 (평가 기능 전까지 고정)
	defaultMannerTemperature = 36.5
	// 프로필 사진이 없을 때 내려주는 값
	noProfilePicture = "사진 데이터가 없음"
)

// ListingSummary is one card of the neighborhood feed.
type ListingSummary struct {
	ItemID       uint   `json:"itemId"`
	ImgSrc       string `json:"imgSrc"`
	Title        string `json:"title"`
	TownName     string `json:"townName"`
	PostedTime   string `json:"postedTime"`
	Price        int    `json:"price"`
	WishCount    int    `json:"wishCount"`
	CommentCount int    `json:"commentCount"`
	Viewed       int    `json:"viewed"`
	OrderStatus  string `json:"order_status"`
}

// SellerItem is the compact card used by seller and related item lists.
type SellerItem struct {
	ID          uint   `json:"id"`
	ImgSrc      string `json:"imgSrc"`
	Title       string `json:"title"`
	Price       int    `json:"price"`
	OrderStatus string `json:"order_status"`
}

// ListingDetail keeps the one-element arrays existing clients expect.
type ListingDetail struct {
	SellerData    []SellerData    `json:"sellerdata"`
	ProductDetail []ProductDetail `json:"productdetail"`
}

type SellerData struct {
	SellerProfilePic  string  `json:"seller_profilepic"`
	Seller            string  `json:"seller"`
	SellerID          uint    `json:"seller_id"`
	TownName          string  `json:"townName"`
	TownCode          uint    `json:"towncode"`
	MannerTemperature float64 `json:"mannerTemperature"`
}

type ProductDetail struct {
	ImgSrcList   []string `json:"imgSrcList"`
	Price        int      `json:"price"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	PostedTime   string   `json:"postedTime"`
	Description  string   `json:"description"`
	WishCount    int      `json:"wishCount"`
	Hits         int      `json:"hits"`
	ItemID       uint     `json:"itemId"`
	OrderStatus  string   `json:"order_status"`
	CommentCount int      `json:"commentCount"`
}

// CommentList pairs each comment with its author card, index for index.
type CommentList struct {
	UploaderData  []CommentUploader `json:"uploaderdata"`
	CommentDetail []CommentDetail   `json:"commentdetail"`
}

type CommentUploader struct {
	UploaderProfilePic string  `json:"uploader_profilepic"`
	Uploader           string  `json:"uploader"`
	UploaderID         uint    `json:"uploader_id"`
	MannerTemperature  float64 `json:"mannerTemperature"`
}

type CommentDetail struct {
	Uploader   string `json:"uploader"`
	Content    string `json:"content"`
	PostedTime string `json:"postedTime"`
}

// listingRelations holds the batched related rows for a page of products.
type listingRelations struct {
	images   map[uint][]string
	wishes   map[uint]int
	comments map[uint]int
}

func (r listingRelations) thumbnail(productID uint) string {
	if urls := r.images[productID]; len(urls) > 0 {
		return urls[0]
	}
	return ""
}

func (r listingRelations) imageList(productID uint) []string {
	if urls := r.images[productID]; urls != nil {
		return urls
	}
	return []string{}
}

func toListingSummary(p model.Product, rel listingRelations) ListingSummary {
	return ListingSummary{
		ItemID:       p.ID,
		ImgSrc:       rel.thumbnail(p.ID),
		Title:        p.Name,
		TownName:     p.Address.TownName(),
		PostedTime:   formatTime(p.UpdatedAt),
		Price:        p.Price,
		WishCount:    rel.wishes[p.ID],
		CommentCount: rel.comments[p.ID],
		Viewed:       p.Viewed,
		OrderStatus:  p.OrderStatus.Name,
	}
}

func toSellerItem(p model.Product, rel listingRelations) SellerItem {
	return SellerItem{
		ID:          p.ID,
		ImgSrc:      rel.thumbnail(p.ID),
		Title:       p.Name,
		Price:       p.Price,
		OrderStatus: p.OrderStatus.Name,
	}
}

func toListingDetail(p model.Product, rel listingRelations) *ListingDetail {
	return &ListingDetail{
		SellerData: []SellerData{{
			SellerProfilePic:  profilePicture(p.Uploader),
			Seller:            p.Uploader.Nickname,
			SellerID:          p.Uploader.ID,
			TownName:          p.Address.TownName(),
			TownCode:          p.Address.ID,
			MannerTemperature: defaultMannerTemperature,
		}},
		ProductDetail: []ProductDetail{{
			ImgSrcList:   rel.imageList(p.ID),
			Price:        p.Price,
			Title:        p.Name,
			Category:     p.ProductCategory.Name,
			PostedTime:   formatTime(p.UpdatedAt),
			Description:  p.Description,
			WishCount:    rel.wishes[p.ID],
			Hits:         p.Viewed,
			ItemID:       p.ID,
			OrderStatus:  p.OrderStatus.Name,
			CommentCount: rel.comments[p.ID],
		}},
	}
}

func toCommentList(comments []model.ProductComment) *CommentList {
	list := &CommentList{
		UploaderData:  make([]CommentUploader, 0, len(comments)),
		CommentDetail: make([]CommentDetail, 0, len(comments)),
	}
	for _, c := range comments {
		list.UploaderData = append(list.UploaderData, CommentUploader{
			UploaderProfilePic: profilePicture(c.Uploader),
			Uploader:           c.Uploader.Nickname,
			UploaderID:         c.Uploader.ID,
			MannerTemperature:  defaultMannerTemperature,
		})
		list.CommentDetail = append(list.CommentDetail, CommentDetail{
			Uploader:   c.Uploader.Nickname,
			Content:    c.Content,
			PostedTime: formatTime(c.CreatedAt),
		})
	}
	return list
}

func profilePicture(u model.User) string {
	if u.ProfilePicture == nil || *u.ProfilePicture == "" {
		return noProfilePicture
	}
	return *u.ProfilePicture
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func productIDs(products []model.Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
