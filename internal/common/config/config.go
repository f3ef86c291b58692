package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/database"
)

// 設定キー（環境変数名と同じ）
const (
	KeyDBDriver        = "DB_DRIVER"
	KeyDBHost          = "DB_HOST"
	KeyDBPort          = "DB_PORT"
	KeyDBUserName      = "DB_USERNAME"
	KeyDBPassword      = "DB_PASSWORD"
	KeyDBName          = "DB_NAME"
	KeyDBSSLMode       = "DB_SSL_MODE"
	KeyDBDSN           = "DB_DSN"
	KeyDBSecretID      = "DB_SECRET_ID"
	KeyAPIPort         = "API_PORT"
	KeyAutoMigrate     = "AUTO_MIGRATE"
	KeyShutdownTimeout = "SHUTDOWN_TIMEOUT"
	KeyEnableTracing   = "CREEKRIVER_ENABLE_TRACING"
)

type Config struct {
	DB     database.Config
	Server ServerConfig
	// DBSecretID が指定されている場合はSecrets Managerから接続情報を取得します
	DBSecretID    string
	AutoMigrate   bool
	EnableTracing bool
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// Addr はHTTPサーバーの待ち受けアドレスを返します
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// NewViper は既定値と環境変数を読み込むviperを作成します
// configFileが指定されている場合は設定ファイルも読み込みます
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(KeyDBDriver, database.DriverPostgres)
	v.SetDefault(KeyDBHost, "localhost")
	v.SetDefault(KeyDBPort, 5432)
	v.SetDefault(KeyDBUserName, "postgres")
	v.SetDefault(KeyDBPassword, "postgres")
	v.SetDefault(KeyDBName, "creekriver")
	v.SetDefault(KeyAPIPort, "8080")
	v.SetDefault(KeyAutoMigrate, false)
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)

	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	return v, nil
}

// LoadConfig は設定を読み込みます
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DB: database.Config{
			Driver:   v.GetString(KeyDBDriver),
			Host:     v.GetString(KeyDBHost),
			Port:     v.GetInt(KeyDBPort),
			UserName: v.GetString(KeyDBUserName),
			Password: v.GetString(KeyDBPassword),
			DBName:   v.GetString(KeyDBName),
			SSLMode:  v.GetString(KeyDBSSLMode),
			DSN:      v.GetString(KeyDBDSN),
		},
		Server: ServerConfig{
			Port:            v.GetString(KeyAPIPort),
			ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		},
		DBSecretID:  v.GetString(KeyDBSecretID),
		AutoMigrate: v.GetBool(KeyAutoMigrate),
	}

	if cfg.DB.Driver != database.DriverPostgres && cfg.DB.Driver != database.DriverSQLite {
		return nil, fmt.Errorf("unsupported %s: %q", KeyDBDriver, cfg.DB.Driver)
	}
	if cfg.Server.Port == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyAPIPort)
	}

	// 環境変数[CREEKRIVER_ENABLE_TRACING]を見てトレースを有効にする。対応しているTracingはAWS_XRAYのみ。
	// 環境変数[AWS_XRAY_SDK_DISABLED]がtrueの場合は必ずトレースを無効にする。
	enableKey := v.GetString(KeyEnableTracing)
	if !sdkDisabled() && (strings.ToLower(enableKey) == "true" || enableKey == "1") {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "FALSE")
		cfg.EnableTracing = true
	} else {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
		cfg.EnableTracing = false
	}

	return cfg, nil
}

// Check if SDK is disabled
func sdkDisabled() bool {
	disableKey := os.Getenv("AWS_XRAY_SDK_DISABLED")
	return strings.ToLower(disableKey) == "true"
}
