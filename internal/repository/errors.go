package repository

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound は指定されたIDの行が存在しない場合のエラーです
	ErrNotFound = errors.New("record not found")
	// ErrInvalidData は外部キーや必須項目などの制約違反で書き込めない場合のエラーです
	ErrInvalidData = errors.New("invalid data")
)

// isConstraintViolation はドライバのエラーが整合性制約違反かどうかを判定します
func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// SQLSTATE class 22: data exception, class 23: integrity constraint violation
		class := pqErr.Code.Class()
		return class == "22" || class == "23"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}

	return false
}
