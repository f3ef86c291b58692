package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uma-arai/sbcntr-creekriver/internal/model"
)

// timestampLayout はタイムゾーンを持たないISO-8601形式です
const timestampLayout = "2006-01-02T15:04:05"

// 受け付ける日時の形式
var acceptedTimestampLayouts = []string{
	time.RFC3339Nano,
	timestampLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Timestamp はタイムゾーンなしのISO-8601形式で入出力する日時です
type Timestamp time.Time

// Time は内部のtime.Timeを返します
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(timestampLayout))
}

// UnmarshalJSON implements json.Unmarshaler
// オフセット付きの値はUTCに変換します
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range acceptedTimestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Timestamp(parsed.UTC())
			return nil
		}
	}

	return fmt.Errorf("invalid timestamp format: %q", s)
}

// CampsiteRequest はキャンプサイトの作成・更新リクエストです
type CampsiteRequest struct {
	Nickname       string  `json:"nickname"`
	ImageURL       *string `json:"imageUrl"`
	CampsiteTypeID int64   `json:"campsiteTypeId"`
}

// ToModel はリクエストをキャンプサイトに変換します
func (r CampsiteRequest) ToModel() model.Campsite {
	return model.Campsite{
		Nickname:       r.Nickname,
		ImageURL:       r.ImageURL,
		CampsiteTypeID: r.CampsiteTypeID,
	}
}

// ReservationRequest は予約の作成リクエストです
type ReservationRequest struct {
	CampsiteID    int64     `json:"campsiteId"`
	UserProfileID int64     `json:"userProfileId"`
	CheckinDate   Timestamp `json:"checkinDate"`
	CheckoutDate  Timestamp `json:"checkoutDate"`
}

// ToModel はリクエストを予約に変換します
func (r ReservationRequest) ToModel() model.Reservation {
	return model.Reservation{
		CampsiteID:    r.CampsiteID,
		UserProfileID: r.UserProfileID,
		CheckinDate:   r.CheckinDate.Time(),
		CheckoutDate:  r.CheckoutDate.Time(),
	}
}
