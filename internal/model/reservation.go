package model

import "time"

// UserProfile は予約を行う利用者です
type UserProfile struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
}

// Reservation は利用者によるキャンプサイトの予約です
// Campsite, UserProfileは一覧取得時に結合して設定されます
type Reservation struct {
	ID            int64        `db:"id"`
	CampsiteID    int64        `db:"campsite_id"`
	UserProfileID int64        `db:"user_profile_id"`
	CheckinDate   time.Time    `db:"checkin_date"`
	CheckoutDate  time.Time    `db:"checkout_date"`
	Campsite      *Campsite    `db:"-"`
	UserProfile   *UserProfile `db:"-"`
}
