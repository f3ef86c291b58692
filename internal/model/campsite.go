package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CampsiteType はキャンプサイトの種別を表します
// 1泊あたりの料金と最大宿泊日数を定義する参照データです
type CampsiteType struct {
	ID                 int64           `db:"id"`
	CampsiteTypeName   string          `db:"campsite_type_name"`
	MaxReservationDays int             `db:"max_reservation_days"`
	FeePerNight        decimal.Decimal `db:"fee_per_night"`
}

// Campsite は予約可能なキャンプサイトを表します
// CampsiteTypeは詳細取得時のみ設定されます
type Campsite struct {
	ID             int64         `db:"id"`
	Nickname       string        `db:"nickname"`
	ImageURL       *string       `db:"image_url"`
	CampsiteTypeID int64         `db:"campsite_type_id"`
	CampsiteType   *CampsiteType `db:"-"`
}

// HasRequiredFields は書き込み時に必須の項目が揃っているかを返します
func (c Campsite) HasRequiredFields() bool {
	return strings.TrimSpace(c.Nickname) != ""
}
