package repository

import (
	"context"
	"database/sql"
	"log"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
)

// DB はリポジトリ層から利用するX-Rayトレース付きのDBラッパーです
// クエリは?プレースホルダで記述し、ドライバに合わせてRebindします
type DB struct {
	*sqlx.DB
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// BeginTx starts a new transaction
func (db *DB) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return db.DB.BeginTxx(ctx, nil)
}

// IsPostgres reports whether the underlying driver is PostgreSQL
func (db *DB) IsPostgres() bool {
	return db.DriverName() == "postgres"
}

// GetContext wraps sqlx.DB.GetContext with X-Ray tracing
func (db *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, seg := beginQuerySubsegment(ctx, "DB.Get", query)
	defer seg.Close(nil)

	if err := db.DB.GetContext(ctx, dest, db.Rebind(query), args...); err != nil {
		seg.Close(err)
		return err
	}

	return nil
}

// SelectContext wraps sqlx.DB.SelectContext with X-Ray tracing
func (db *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, seg := beginQuerySubsegment(ctx, "DB.Select", query)
	defer seg.Close(nil)

	if err := db.DB.SelectContext(ctx, dest, db.Rebind(query), args...); err != nil {
		seg.Close(err)
		return err
	}

	return nil
}

// QueryxContext wraps sqlx.DB.QueryxContext with X-Ray tracing
func (db *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	ctx, seg := beginQuerySubsegment(ctx, "DB.Queryx", query)
	defer seg.Close(nil)

	rows, err := db.DB.QueryxContext(ctx, db.Rebind(query), args...)
	if err != nil {
		seg.Close(err)
		return nil, err
	}

	return rows, nil
}

// QueryRowxContext wraps sqlx.DB.QueryRowxContext with X-Ray tracing
func (db *DB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	ctx, seg := beginQuerySubsegment(ctx, "DB.QueryRowx", query)
	defer seg.Close(nil)

	return db.DB.QueryRowxContext(ctx, db.Rebind(query), args...)
}

// ExecContext wraps sqlx.DB.ExecContext with X-Ray tracing
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	ctx, seg := beginQuerySubsegment(ctx, "DB.Exec", query)
	defer seg.Close(nil)

	result, err := db.DB.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		seg.Close(err)
		return nil, err
	}

	return result, nil
}

// beginQuerySubsegment はクエリをメタデータに持つサブセグメントを開始します
// 親セグメントがない場合はnilのセグメントを返します
func beginQuerySubsegment(ctx context.Context, name, query string) (context.Context, *xray.Segment) {
	if xray.GetSegment(ctx) == nil {
		return ctx, nil
	}

	ctx, seg := xray.BeginSubsegment(ctx, name)
	if seg == nil {
		return ctx, nil
	}

	// クエリをメタデータとして追加
	if err := seg.AddMetadata("query", query); err != nil {
		log.Printf("Failed to add query metadata: %v", err)
	}

	return ctx, seg
}
