package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/uma-arai/sbcntr-creekriver/internal/model"
)

func strPtr(s string) *string { return &s }

// SeedCampsiteTypes は初期投入するキャンプサイト種別です
var SeedCampsiteTypes = []model.CampsiteType{
	{ID: 1, CampsiteTypeName: "Tent", FeePerNight: decimal.RequireFromString("15.99"), MaxReservationDays: 7},
	{ID: 2, CampsiteTypeName: "RV", FeePerNight: decimal.RequireFromString("26.50"), MaxReservationDays: 14},
	{ID: 3, CampsiteTypeName: "Primitive", FeePerNight: decimal.RequireFromString("10.00"), MaxReservationDays: 3},
	{ID: 4, CampsiteTypeName: "Hammock", FeePerNight: decimal.RequireFromString("12"), MaxReservationDays: 7},
}

// SeedCampsites は初期投入するキャンプサイトです
var SeedCampsites = []model.Campsite{
	{ID: 1, CampsiteTypeID: 1, Nickname: "Barred Owl", ImageURL: strPtr("https://tnstateparks.com/assets/images/content-images/campgrounds/249/colsp-area2-site73.jpg")},
	{ID: 2, CampsiteTypeID: 2, Nickname: "Screechy Rooster Mornings Campgrounds", ImageURL: strPtr("https://hipcamp-res.cloudinary.com/f_auto,c_limit,w_1120,q_60/v1683846899/land-photos/cylaydbzi96nta6h5oms.jpg")},
	{ID: 3, CampsiteTypeID: 3, Nickname: "Explorer's Respite", ImageURL: strPtr("https://explorerchick.com/wp-content/uploads/2023/08/campsite1.jpg")},
	{ID: 4, CampsiteTypeID: 4, Nickname: "The Sleepy Sloth", ImageURL: strPtr("https://en.pimg.jp/084/266/196/1/84266196.jpg")},
	{ID: 5, CampsiteTypeID: 2, Nickname: "Wrangled Wildlife Campsites", ImageURL: strPtr("https://www.visitarizona.com/places/parks-monuments/patagonia-lake-state-park/")},
	{ID: 6, CampsiteTypeID: 3, Nickname: "FreeCamp Campgrounds", ImageURL: strPtr("https://static01.nyt.com/images/2021/04/25/multimedia/25ah-camping/merlin_186621867_547397c8-d887-4bbb-a094-d17f15b6cd95-jumbo.jpg?quality=75&auto=webp")},
}

// SeedUserProfiles は初期投入する利用者です
var SeedUserProfiles = []model.UserProfile{
	{ID: 1, FirstName: "Roger", LastName: "Rogers", Email: "Roger@Rogers.com"},
	{ID: 2, FirstName: "Bill", LastName: "Billington", Email: "Bill@Billington.com"},
}

// SeedReservations は初期投入する予約です
// チェックアウト日は未設定（0001-01-01）のままです
var SeedReservations = []model.Reservation{
	{ID: 1, CampsiteID: 2, UserProfileID: 1, CheckinDate: time.Date(2022, 12, 10, 0, 0, 0, 0, time.UTC), CheckoutDate: time.Time{}},
	{ID: 2, CampsiteID: 1, UserProfileID: 2, CheckinDate: time.Date(2022, 12, 12, 0, 0, 0, 0, time.UTC), CheckoutDate: time.Time{}},
}

// identityTables はシード後にPostgreSQLのIDシーケンスを進めるテーブルです
var identityTables = []string{"campsite_types", "user_profiles", "campsites", "reservations"}

// Seed は固定IDのシードデータを主キーが存在しない場合のみ挿入します
// 何度実行しても行は重複しません
func (r *SchemaRepositoryImpl) Seed(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "SchemaRepository.Seed")
	defer seg.Close(nil)

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := seedRows(ctx, tx, r.db.IsPostgres()); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("rollback failed: %v, original error: %v", rbErr, err)
		}
		seg.Close(err)
		return err
	}

	if err := tx.Commit(); err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func seedArgs[T any](rows []T) []interface{} {
	args := make([]interface{}, len(rows))
	for i, row := range rows {
		args[i] = row
	}
	return args
}

// seedRows は依存順にシードデータを挿入します
func seedRows(ctx context.Context, tx *sqlx.Tx, isPostgres bool) error {
	steps := []struct {
		table string
		query string
		rows  []interface{}
	}{
		{
			table: "campsite_types",
			query: `
				INSERT INTO campsite_types (id, campsite_type_name, max_reservation_days, fee_per_night)
				VALUES (:id, :campsite_type_name, :max_reservation_days, :fee_per_night)
				ON CONFLICT (id) DO NOTHING`,
			rows: seedArgs(SeedCampsiteTypes),
		},
		{
			table: "user_profiles",
			query: `
				INSERT INTO user_profiles (id, first_name, last_name, email)
				VALUES (:id, :first_name, :last_name, :email)
				ON CONFLICT (id) DO NOTHING`,
			rows: seedArgs(SeedUserProfiles),
		},
		{
			table: "campsites",
			query: `
				INSERT INTO campsites (id, nickname, image_url, campsite_type_id)
				VALUES (:id, :nickname, :image_url, :campsite_type_id)
				ON CONFLICT (id) DO NOTHING`,
			rows: seedArgs(SeedCampsites),
		},
		{
			table: "reservations",
			query: `
				INSERT INTO reservations (id, campsite_id, user_profile_id, checkin_date, checkout_date)
				VALUES (:id, :campsite_id, :user_profile_id, :checkin_date, :checkout_date)
				ON CONFLICT (id) DO NOTHING`,
			rows: seedArgs(SeedReservations),
		},
	}

	for _, step := range steps {
		var inserted int64
		for _, row := range step.rows {
			result, err := tx.NamedExecContext(ctx, step.query, row)
			if err != nil {
				return fmt.Errorf("failed to seed %s: %w", step.table, err)
			}
			if n, err := result.RowsAffected(); err == nil {
				inserted += n
			}
		}
		if inserted > 0 {
			log.Printf("Seeded %d rows into %s", inserted, step.table)
		}
	}

	if !isPostgres {
		return nil
	}

	// 固定IDで挿入したためIDENTITYのシーケンスを最大IDまで進める
	for _, table := range identityTables {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %[1]s))",
			table,
		)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset identity sequence of %s: %w", table, err)
		}
	}

	return nil
}
