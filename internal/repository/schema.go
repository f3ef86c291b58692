package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// PostgreSQL用のDDLです
// IDはIDENTITY列として採番し、シードでは固定IDを明示的に挿入します
var postgresSchemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS campsite_types (
		id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		campsite_type_name TEXT NOT NULL CHECK (campsite_type_name <> ''),
		max_reservation_days INTEGER NOT NULL,
		fee_per_night NUMERIC NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS campsites (
		id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		nickname TEXT NOT NULL CHECK (nickname <> ''),
		image_url TEXT,
		campsite_type_id INTEGER NOT NULL REFERENCES campsite_types(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		campsite_id INTEGER NOT NULL REFERENCES campsites(id) ON DELETE CASCADE,
		user_profile_id INTEGER NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
		checkin_date TIMESTAMP WITHOUT TIME ZONE NOT NULL,
		checkout_date TIMESTAMP WITHOUT TIME ZONE NOT NULL
	)`,
}

// SQLite用のDDLです
// fee_per_nightは小数の精度を保つためTEXTで保持します
var sqliteSchemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS campsite_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		campsite_type_name TEXT NOT NULL CHECK (campsite_type_name <> ''),
		max_reservation_days INTEGER NOT NULL,
		fee_per_night TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS campsites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nickname TEXT NOT NULL CHECK (nickname <> ''),
		image_url TEXT,
		campsite_type_id INTEGER NOT NULL REFERENCES campsite_types(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		campsite_id INTEGER NOT NULL REFERENCES campsites(id) ON DELETE CASCADE,
		user_profile_id INTEGER NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
		checkin_date TIMESTAMP NOT NULL,
		checkout_date TIMESTAMP NOT NULL
	)`,
}

// indexDDL は外部キー列のインデックスです
var indexDDL = []string{
	`CREATE INDEX IF NOT EXISTS ix_campsites_campsite_type_id ON campsites(campsite_type_id)`,
	`CREATE INDEX IF NOT EXISTS ix_reservations_campsite_id ON reservations(campsite_id)`,
	`CREATE INDEX IF NOT EXISTS ix_reservations_user_profile_id ON reservations(user_profile_id)`,
}

// SchemaRepository はテーブル定義とシードデータの投入を担当するインターフェースです
type SchemaRepository interface {
	CreateSchema(ctx context.Context) error
	Seed(ctx context.Context) error
}

// SchemaRepositoryImpl はSchemaRepositoryの実装です
type SchemaRepositoryImpl struct {
	db *DB
}

// NewSchemaRepository は新しいSchemaRepositoryを作成します
func NewSchemaRepository(db *DB) *SchemaRepositoryImpl {
	return &SchemaRepositoryImpl{db: db}
}

// CreateSchema はテーブルとインデックスを依存順に作成します
// 既に存在するテーブルはそのまま残します
func (r *SchemaRepositoryImpl) CreateSchema(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "SchemaRepository.CreateSchema")
	defer seg.Close(nil)

	ddl := sqliteSchemaDDL
	if r.db.IsPostgres() {
		ddl = postgresSchemaDDL
	}

	for _, stmt := range append(ddl, indexDDL...) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			seg.Close(err)
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
