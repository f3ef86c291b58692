package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-creekriver/internal/model"
)

type ReservationRepository interface {
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, reservation *model.Reservation) error
	DeleteReservation(ctx context.Context, id int64) error
}

type ReservationRepositoryImpl struct {
	db *DB
}

func NewReservationRepository(db *DB) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{db: db}
}

// reservationRow は予約に利用者、キャンプサイト、種別を結合した行です
type reservationRow struct {
	model.Reservation
	User     model.UserProfile  `db:"user_profile"`
	Campsite model.Campsite     `db:"campsite"`
	Type     model.CampsiteType `db:"campsite_type"`
}

// ListReservations は全ての予約を利用者とキャンプサイト（種別を含む）と合わせて取得します
// チェックイン日の昇順で返します
func (r *ReservationRepositoryImpl) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "ReservationRepository.ListReservations")
	defer seg.Close(nil)

	query := `
		SELECT
			r.id,
			r.campsite_id,
			r.user_profile_id,
			r.checkin_date,
			r.checkout_date,
			u.id AS "user_profile.id",
			u.first_name AS "user_profile.first_name",
			u.last_name AS "user_profile.last_name",
			u.email AS "user_profile.email",
			c.id AS "campsite.id",
			c.nickname AS "campsite.nickname",
			c.image_url AS "campsite.image_url",
			c.campsite_type_id AS "campsite.campsite_type_id",
			ct.id AS "campsite_type.id",
			ct.campsite_type_name AS "campsite_type.campsite_type_name",
			ct.max_reservation_days AS "campsite_type.max_reservation_days",
			ct.fee_per_night AS "campsite_type.fee_per_night"
		FROM reservations r
		INNER JOIN user_profiles u ON u.id = r.user_profile_id
		INNER JOIN campsites c ON c.id = r.campsite_id
		INNER JOIN campsite_types ct ON ct.id = c.campsite_type_id
		ORDER BY r.checkin_date ASC, r.id ASC`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	reservations := []model.Reservation{}
	for rows.Next() {
		var row reservationRow
		if err := rows.StructScan(&row); err != nil {
			seg.Close(err)
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}

		reservation := row.Reservation
		campsiteType := row.Type
		campsite := row.Campsite
		campsite.CampsiteType = &campsiteType
		user := row.User
		reservation.Campsite = &campsite
		reservation.UserProfile = &user

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("error iterating reservation rows: %w", err)
	}

	return reservations, nil
}

// CreateReservation は予約を作成し、採番されたIDを設定します
// 存在しないキャンプサイトや利用者を参照している場合はErrInvalidDataを返します
func (r *ReservationRepositoryImpl) CreateReservation(ctx context.Context, reservation *model.Reservation) error {
	ctx, seg := xray.BeginSubsegment(ctx, "ReservationRepository.CreateReservation")
	defer seg.Close(nil)

	query := `
		INSERT INTO reservations (
			campsite_id,
			user_profile_id,
			checkin_date,
			checkout_date
		) VALUES (
			?, ?, ?, ?
		)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		reservation.CampsiteID,
		reservation.UserProfileID,
		reservation.CheckinDate,
		reservation.CheckoutDate,
	).Scan(&reservation.ID)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("failed to create reservation: %w", ErrInvalidData)
		}
		seg.Close(err)
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

// DeleteReservation は予約を削除します
func (r *ReservationRepositoryImpl) DeleteReservation(ctx context.Context, id int64) error {
	ctx, seg := xray.BeginSubsegment(ctx, "ReservationRepository.DeleteReservation")
	defer seg.Close(nil)

	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no reservation found with ID %d: %w", id, ErrNotFound)
	}

	return nil
}
