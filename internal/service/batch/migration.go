package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/utils"
	"github.com/uma-arai/sbcntr-creekriver/internal/repository"
)

// MigrationBatchService はスキーマ作成とシードデータ投入のバッチ処理を担当します
type MigrationBatchService struct {
	schemaRepo repository.SchemaRepository
	// skipSeed がtrueの場合はスキーマ作成のみ行います
	skipSeed bool
}

// NewMigrationBatchService は新しいMigrationBatchServiceを作成します
func NewMigrationBatchService(db *repository.DB) *MigrationBatchService {
	return &MigrationBatchService{
		schemaRepo: repository.NewSchemaRepository(db),
	}
}

// SetSkipSeed はシードデータ投入を省略するかどうかを設定します
func (s *MigrationBatchService) SetSkipSeed(skip bool) {
	s.skipSeed = skip
}

// Run はマイグレーションバッチ処理を実行します
func (s *MigrationBatchService) Run(ctx context.Context) error {
	// X-Rayセグメントの作成
	ctx, seg := xray.BeginSubsegment(ctx, "MigrationBatchService.Run")
	defer seg.Close(nil)

	startTime := time.Now()

	if err := s.schemaRepo.CreateSchema(ctx); err != nil {
		seg.Close(err)
		return utils.GetStackWithError(fmt.Errorf("failed to create schema: %w", err))
	}
	log.Println("Schema is up to date")

	if s.skipSeed {
		log.Println("Seed step skipped")
	} else {
		if err := s.schemaRepo.Seed(ctx); err != nil {
			seg.Close(err)
			return utils.GetStackWithError(fmt.Errorf("failed to seed data: %w", err))
		}
		log.Println("Seed data is up to date")
	}

	duration := time.Since(startTime)

	// セグメントにメタデータを追加
	if seg != nil {
		if err := seg.AddMetadata("duration", duration.String()); err != nil {
			log.Printf("Failed to add duration metadata: %v", err)
		}
	}

	log.Printf("Migration batch process completed successfully. Duration: %v", duration)
	return nil
}
