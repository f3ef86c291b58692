package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/spf13/cobra"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/utils"
	"github.com/uma-arai/sbcntr-creekriver/internal/service/batch"
)

var (
	migrateTimeout  time.Duration
	migrateSkipSeed bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "スキーマを作成し、シードデータを投入します",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 5*time.Minute, "マイグレーション処理のタイムアウト時間")
	migrateCmd.Flags().BoolVar(&migrateSkipSeed, "skip-seed", false, "シードデータの投入を省略する")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	// コンテキストを作成
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// X-Rayセグメントの作成
	if cfg.EnableTracing {
		var seg *xray.Segment
		ctx, seg = xray.BeginSegment(ctx, projectName+"-migrate")
		defer seg.Close(nil)

		// セグメントにメタデータを追加
		if err := seg.AddMetadata("timeout", migrateTimeout.String()); err != nil {
			log.Printf("Failed to add timeout metadata: %v", err)
		}
	}

	service := batch.NewMigrationBatchService(db)
	service.SetSkipSeed(migrateSkipSeed)

	// シグナルを受けたらマイグレーションを中断する
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			log.Printf("Received signal: %v", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := utils.RunWithTimeout(ctx, migrateTimeout, service.Run); err != nil {
		return err
	}

	log.Println("Migration completed successfully")
	return nil
}
