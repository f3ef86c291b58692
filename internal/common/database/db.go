package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	// DriverPostgres は本番環境で利用するPostgreSQLドライバ名です
	DriverPostgres = "postgres"
	// DriverSQLite はローカル環境やテストで利用するSQLiteドライバ名です
	DriverSQLite = "sqlite"
)

func init() {
	// modernc.org/sqliteのドライバ名はsqlxの既定のバインド一覧に含まれていない
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type DB struct {
	*sqlx.DB
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	UserName string
	Password string
	DBName   string
	SSLMode  string
	// DSN が指定されている場合は他の接続項目より優先します
	DSN string
}

// DataSourceName はドライバに渡す接続文字列を返します
func (c Config) DataSourceName() string {
	if c.Driver == DriverSQLite {
		return sqliteDSN(c.DSN, c.DBName)
	}
	if c.DSN != "" {
		return c.DSN
	}

	// localhostのDBの場合はSSLを無効化
	sslMode := c.SSLMode
	if sslMode == "" {
		if c.Host == "localhost" || c.Host == "127.0.0.1" {
			sslMode = "disable"
		} else {
			sslMode = "require" // 本番環境ではSSLを有効にする
		}
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.UserName,
		c.Password,
		c.DBName,
		sslMode,
	)
}

// sqliteDSN は外部キー制約を有効にしたSQLiteの接続文字列を組み立てます
// SQLiteは接続ごとにforeign_keysを有効にしないとCASCADEが動作しない
func sqliteDSN(dsn, dbName string) string {
	if dsn == "" {
		dsn = dbName + ".db"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	params := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)", "_time_format=sqlite"}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// NewDB はデータベース接続を作成します
// enableTracingがtrueの場合はX-Ray対応のSQLコンテキストで接続します
func NewDB(cfg Config, enableTracing bool) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	var (
		db  *sql.DB
		err error
	)
	if enableTracing && driver == DriverPostgres {
		// X-Ray対応のSQLコンテキストを作成
		db, err = xray.SQLContext(driver, cfg.DataSourceName())
		if err != nil {
			return nil, fmt.Errorf("failed to open database with X-Ray: %w", err)
		}
	} else {
		db, err = sql.Open(driver, cfg.DataSourceName())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	// コネクションプールの設定
	if driver == DriverSQLite {
		// SQLiteは書き込みが単一接続に直列化されるため接続数を絞る
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	// 接続テスト
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sqlx.NewDb(db, driver)}, nil
}
