package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/config"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/database"
	"github.com/uma-arai/sbcntr-creekriver/internal/repository"
)

const (
	projectName = "sbcntr-creekriver"
)

// --config フラグの値
var configFile string

var rootCmd = &cobra.Command{
	Use:   "creekriver",
	Short: "Creek River campground reservation API",
	// 引数なしで起動した場合はAPIサーバーを起動する
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "設定ファイルのパス（未指定の場合は環境変数のみ）")
	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command failed: %v", err)
		os.Exit(1)
	}
}

// loadConfig はフラグと環境変数から設定を読み込みます
// bindsにはviperのキーとフラグ名の組を指定します
func loadConfig(cmd *cobra.Command, binds map[string]string) (*config.Config, error) {
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd, binds); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// X-Ray設定
	if cfg.EnableTracing {
		if err := xray.Configure(xray.Config{
			DaemonAddr:     "127.0.0.1:2000", // X-Rayデーモンのアドレス
			ServiceVersion: "1.0.0",
		}); err != nil {
			log.Printf("Failed to configure X-Ray: %v", err)
			// X-Ray設定失敗時はデフォルトの設定を使用
			if configErr := xray.Configure(xray.Config{}); configErr != nil {
				return nil, fmt.Errorf("failed to configure default X-Ray settings: %w", configErr)
			}
		}
		os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	return cfg, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, binds map[string]string) error {
	for key, name := range binds {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// openDB はデータベースに接続し、リポジトリ層のDBを返します
// DB_SECRET_IDが指定されている場合はSecrets Managerの接続情報を利用します
func openDB(ctx context.Context, cfg *config.Config) (*repository.DB, error) {
	if cfg.DBSecretID != "" {
		client, err := config.NewSecretsClient(ctx)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplyDBSecret(ctx, client); err != nil {
			return nil, err
		}
	}

	db, err := database.NewDB(cfg.DB, cfg.EnableTracing)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w\nStack trace:\n%s", err, debug.Stack())
	}
	log.Printf("DB connected successfully (driver=%s)", db.DriverName())

	// database.DBをrepository.DBに変換
	return &repository.DB{DB: db.DB}, nil
}
