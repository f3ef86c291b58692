package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-creekriver/internal/model"
)

// CampsiteRepository はキャンプサイトの永続化を担当するインターフェースです
type CampsiteRepository interface {
	ListCampsites(ctx context.Context) ([]model.Campsite, error)
	GetCampsite(ctx context.Context, id int64) (*model.Campsite, error)
	CreateCampsite(ctx context.Context, campsite *model.Campsite) error
	UpdateCampsite(ctx context.Context, id int64, campsite model.Campsite) error
	DeleteCampsite(ctx context.Context, id int64) error
}

// CampsiteRepositoryImpl はCampsiteRepositoryの実装です
type CampsiteRepositoryImpl struct {
	db *DB
}

// NewCampsiteRepository は新しいCampsiteRepositoryを作成します
func NewCampsiteRepository(db *DB) *CampsiteRepositoryImpl {
	return &CampsiteRepositoryImpl{db: db}
}

// ListCampsites は全てのキャンプサイトを取得します
// 種別は結合しません
func (r *CampsiteRepositoryImpl) ListCampsites(ctx context.Context) ([]model.Campsite, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "CampsiteRepository.ListCampsites")
	defer seg.Close(nil)

	query := `
		SELECT id, nickname, image_url, campsite_type_id
		FROM campsites
		ORDER BY id ASC`

	campsites := []model.Campsite{}
	if err := r.db.SelectContext(ctx, &campsites, query); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to query campsites: %w", err)
	}

	return campsites, nil
}

// campsiteWithTypeRow はキャンプサイトと種別を結合した行です
type campsiteWithTypeRow struct {
	model.Campsite
	Type model.CampsiteType `db:"campsite_type"`
}

// GetCampsite は指定されたIDのキャンプサイトを種別と合わせて取得します
func (r *CampsiteRepositoryImpl) GetCampsite(ctx context.Context, id int64) (*model.Campsite, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "CampsiteRepository.GetCampsite")
	defer seg.Close(nil)

	query := `
		SELECT
			c.id,
			c.nickname,
			c.image_url,
			c.campsite_type_id,
			ct.id AS "campsite_type.id",
			ct.campsite_type_name AS "campsite_type.campsite_type_name",
			ct.max_reservation_days AS "campsite_type.max_reservation_days",
			ct.fee_per_night AS "campsite_type.fee_per_night"
		FROM campsites c
		INNER JOIN campsite_types ct ON ct.id = c.campsite_type_id
		WHERE c.id = ?`

	var row campsiteWithTypeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("campsite %d: %w", id, ErrNotFound)
		}
		seg.Close(err)
		return nil, fmt.Errorf("failed to get campsite: %w", err)
	}

	campsite := row.Campsite
	campsite.CampsiteType = &row.Type
	return &campsite, nil
}

// CreateCampsite はキャンプサイトを作成し、採番されたIDを設定します
func (r *CampsiteRepositoryImpl) CreateCampsite(ctx context.Context, campsite *model.Campsite) error {
	ctx, seg := xray.BeginSubsegment(ctx, "CampsiteRepository.CreateCampsite")
	defer seg.Close(nil)

	if !campsite.HasRequiredFields() {
		return fmt.Errorf("nickname is required: %w", ErrInvalidData)
	}

	query := `
		INSERT INTO campsites (nickname, image_url, campsite_type_id)
		VALUES (?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		campsite.Nickname,
		campsite.ImageURL,
		campsite.CampsiteTypeID,
	).Scan(&campsite.ID)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("failed to create campsite: %w", ErrInvalidData)
		}
		seg.Close(err)
		return fmt.Errorf("failed to create campsite: %w", err)
	}

	return nil
}

// UpdateCampsite はキャンプサイトの名称、種別、画像URLを上書きします
func (r *CampsiteRepositoryImpl) UpdateCampsite(ctx context.Context, id int64, campsite model.Campsite) error {
	ctx, seg := xray.BeginSubsegment(ctx, "CampsiteRepository.UpdateCampsite")
	defer seg.Close(nil)

	if !campsite.HasRequiredFields() {
		// 存在しないIDへの更新は入力に関わらず404とする
		if err := r.ensureExists(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("nickname is required: %w", ErrInvalidData)
	}

	query := `
		UPDATE campsites
		SET nickname = ?,
			campsite_type_id = ?,
			image_url = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		campsite.Nickname,
		campsite.CampsiteTypeID,
		campsite.ImageURL,
		id,
	)
	if err != nil {
		if isConstraintViolation(err) {
			if existsErr := r.ensureExists(ctx, id); existsErr != nil {
				return existsErr
			}
			return fmt.Errorf("failed to update campsite: %w", ErrInvalidData)
		}
		seg.Close(err)
		return fmt.Errorf("failed to update campsite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("campsite %d: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteCampsite はキャンプサイトを削除します
// 参照している予約は外部キーのCASCADEにより削除されます
func (r *CampsiteRepositoryImpl) DeleteCampsite(ctx context.Context, id int64) error {
	ctx, seg := xray.BeginSubsegment(ctx, "CampsiteRepository.DeleteCampsite")
	defer seg.Close(nil)

	result, err := r.db.ExecContext(ctx, `DELETE FROM campsites WHERE id = ?`, id)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to delete campsite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("campsite %d: %w", id, ErrNotFound)
	}

	return nil
}

// ensureExists は指定されたIDのキャンプサイトが存在しない場合にErrNotFoundを返します
func (r *CampsiteRepositoryImpl) ensureExists(ctx context.Context, id int64) error {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM campsites
			WHERE id = ?
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return fmt.Errorf("failed to check campsite existence: %w", err)
	}

	if !exists {
		return fmt.Errorf("campsite %d: %w", id, ErrNotFound)
	}

	return nil
}
