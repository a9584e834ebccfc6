package storage

import (
	"context"
	"log/slog"
	"time"

	config "github.com/plugfox/foxy-fib/internal/config"
	"github.com/plugfox/foxy-fib/internal/model"
	storage_logger "github.com/plugfox/foxy-fib/internal/storage/storage_logger"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Storage - ledger of computed results
type Storage struct {
	db *gorm.DB
}

func New(config *config.Config, logger *slog.Logger) (*Storage, error) {
	dialector, err := createDialector(&config.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(
		dialector,
		&gorm.Config{
			NamingStrategy: schema.NamingStrategy{},
			Logger:         storage_logger.NewGormSlogLogger(logger),
			NowFunc:        func() time.Time { return time.Now().UTC() },
		})
	if err != nil {
		return nil, err
	}

	model.InitHashFunction()

	// Migrations
	const migrationTimeout = 15 * time.Minute
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()
	if err := db.WithContext(ctx).AutoMigrate(&model.Result{}); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close - close the database connection
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping - check the database connection
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// SaveResult - insert the result, the ID is assigned by the database
func (s *Storage) SaveResult(ctx context.Context, result *model.Result) error {
	return s.db.WithContext(ctx).Create(result).Error
}

// Results - most recent results first, limit <= 0 means all
func (s *Storage) Results(ctx context.Context, limit int) ([]model.Result, error) {
	var results []model.Result
	query := s.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ResultsByN - all results recorded for n, oldest first
func (s *Storage) ResultsByN(ctx context.Context, n int64) ([]model.Result, error) {
	var results []model.Result
	if err := s.db.WithContext(ctx).Where("n = ?", n).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ResultsByDigest - all results sharing a content hash, oldest first
func (s *Storage) ResultsByDigest(ctx context.Context, digest string) ([]model.Result, error) {
	var results []model.Result
	if err := s.db.WithContext(ctx).Where("digest = ?", digest).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CountResults - number of recorded results
func (s *Storage) CountResults(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Result{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
