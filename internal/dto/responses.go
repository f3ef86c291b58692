package dto

import (
	"github.com/shopspring/decimal"
	"github.com/uma-arai/sbcntr-creekriver/internal/model"
)

func init() {
	// 料金は浮動小数点を経由せずJSONの数値として出力する
	decimal.MarshalJSONWithoutQuotes = true
}

// CampsiteTypeResponse はキャンプサイト種別のレスポンスです
type CampsiteTypeResponse struct {
	ID                 int64           `json:"id"`
	CampsiteTypeName   string          `json:"campsiteTypeName"`
	MaxReservationDays int             `json:"maxReservationDays"`
	FeePerNight        decimal.Decimal `json:"feePerNight"`
}

// CampsiteResponse はキャンプサイトのレスポンスです
// campsiteTypeは詳細取得と予約一覧でのみ含まれます
type CampsiteResponse struct {
	ID             int64                 `json:"id"`
	Nickname       string                `json:"nickname"`
	ImageURL       *string               `json:"imageUrl"`
	CampsiteTypeID int64                 `json:"campsiteTypeId"`
	CampsiteType   *CampsiteTypeResponse `json:"campsiteType,omitempty"`
}

// UserProfileResponse は利用者のレスポンスです
type UserProfileResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ReservationResponse は予約のレスポンスです
// 予約からキャンプサイト、利用者への参照のみを持ち、逆方向の参照は含めません
type ReservationResponse struct {
	ID            int64                `json:"id"`
	CampsiteID    int64                `json:"campsiteId"`
	Campsite      *CampsiteResponse    `json:"campsite,omitempty"`
	UserProfileID int64                `json:"userProfileId"`
	UserProfile   *UserProfileResponse `json:"userProfile,omitempty"`
	CheckinDate   Timestamp            `json:"checkinDate"`
	CheckoutDate  Timestamp            `json:"checkoutDate"`
}

// NewCampsiteTypeResponse はキャンプサイト種別をレスポンスに変換します
func NewCampsiteTypeResponse(t model.CampsiteType) CampsiteTypeResponse {
	return CampsiteTypeResponse{
		ID:                 t.ID,
		CampsiteTypeName:   t.CampsiteTypeName,
		MaxReservationDays: t.MaxReservationDays,
		FeePerNight:        t.FeePerNight,
	}
}

// NewCampsiteResponse はキャンプサイトをレスポンスに変換します
func NewCampsiteResponse(c model.Campsite) CampsiteResponse {
	res := CampsiteResponse{
		ID:             c.ID,
		Nickname:       c.Nickname,
		ImageURL:       c.ImageURL,
		CampsiteTypeID: c.CampsiteTypeID,
	}
	if c.CampsiteType != nil {
		t := NewCampsiteTypeResponse(*c.CampsiteType)
		res.CampsiteType = &t
	}
	return res
}

// NewCampsiteResponses はキャンプサイトの一覧をレスポンスに変換します
func NewCampsiteResponses(campsites []model.Campsite) []CampsiteResponse {
	res := make([]CampsiteResponse, len(campsites))
	for i, c := range campsites {
		res[i] = NewCampsiteResponse(c)
	}
	return res
}

// NewReservationResponse は予約をレスポンスに変換します
func NewReservationResponse(r model.Reservation) ReservationResponse {
	res := ReservationResponse{
		ID:            r.ID,
		CampsiteID:    r.CampsiteID,
		UserProfileID: r.UserProfileID,
		CheckinDate:   Timestamp(r.CheckinDate),
		CheckoutDate:  Timestamp(r.CheckoutDate),
	}
	if r.Campsite != nil {
		c := NewCampsiteResponse(*r.Campsite)
		res.Campsite = &c
	}
	if r.UserProfile != nil {
		res.UserProfile = &UserProfileResponse{
			ID:        r.UserProfile.ID,
			FirstName: r.UserProfile.FirstName,
			LastName:  r.UserProfile.LastName,
			Email:     r.UserProfile.Email,
		}
	}
	return res
}

// NewReservationResponses は予約の一覧をレスポンスに変換します
func NewReservationResponses(reservations []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		res[i] = NewReservationResponse(r)
	}
	return res
}
