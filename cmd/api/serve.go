package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/spf13/cobra"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/config"
	"github.com/uma-arai/sbcntr-creekriver/internal/handler"
	"github.com/uma-arai/sbcntr-creekriver/internal/repository"
	"github.com/uma-arai/sbcntr-creekriver/internal/service/batch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP APIサーバーを起動します",
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "待ち受けポート（API_PORT）")
	cmd.Flags().Bool("auto-migrate", false, "起動時にスキーマ作成とシード投入を行う（AUTO_MIGRATE）")
	cmd.Flags().Duration("shutdown-timeout", 0, "グレースフルシャットダウンの待ち時間（SHUTDOWN_TIMEOUT）")
}

var serveFlagBinds = map[string]string{
	config.KeyAPIPort:         "port",
	config.KeyAutoMigrate:     "auto-migrate",
	config.KeyShutdownTimeout: "shutdown-timeout",
}

func runServe(cmd *cobra.Command, args []string) error {
	// 未指定のフラグで環境変数や既定値を上書きしないよう、指定されたフラグのみバインドする
	binds := map[string]string{}
	for key, name := range serveFlagBinds {
		if cmd.Flags().Changed(name) {
			binds[key] = name
		}
	}

	cfg, err := loadConfig(cmd, binds)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		migrateCtx := ctx
		if cfg.EnableTracing {
			var seg *xray.Segment
			migrateCtx, seg = xray.BeginSegment(ctx, projectName+"-migrate")
			defer seg.Close(nil)
		}
		if err := batch.NewMigrationBatchService(db).Run(migrateCtx); err != nil {
			return fmt.Errorf("auto migration failed: %w", err)
		}
	}

	h := handler.NewHandler(
		repository.NewCampsiteRepository(db),
		repository.NewReservationRepository(db),
	)

	var httpHandler http.Handler = handler.NewRouter(h)
	if cfg.EnableTracing {
		httpHandler = xray.Handler(xray.NewFixedSegmentNamer(projectName), httpHandler)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// シグナルハンドリング
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
