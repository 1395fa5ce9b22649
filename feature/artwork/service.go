package artwork

import (
	"context"
	"fmt"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/storage"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/feature/artwork/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Service exposes the artwork media operations behind the CLI commands and
// the HTTP surface.
type Service struct {
	db         *gorm.DB
	client     storage.Client
	bucket     string
	resolver   *Resolver
	reconciler *Reconciler
	logger     *zap.Logger

	runs singleflight.Group
}

// NewService creates an artwork service over the given collaborators.
func NewService(db *gorm.DB, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	resolver := NewResolver(cfg.PublicBaseURL, cfg.Bucket, logger)
	return &Service{
		db:         db,
		client:     client,
		bucket:     cfg.Bucket,
		resolver:   resolver,
		reconciler: NewReconciler(db, client, cfg.Bucket, cfg.Prefix, resolver, logger),
		logger:     logger,
	}
}

// Sync runs a reconciliation. Concurrent calls with the same options join
// the in-flight run and receive its report, so the table only ever sees one
// writer at a time.
func (s *Service) Sync(ctx context.Context, opts Options) (*RunReport, error) {
	key := fmt.Sprintf("sync:dry_run=%t", opts.DryRun)
	v, err, shared := s.runs.Do(key, func() (any, error) {
		return s.reconciler.Run(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	report := v.(*RunReport)
	if shared {
		s.logger.Info("Joined in-flight sync run", zap.String("run_id", report.RunID))
	}
	return report, nil
}

// ListMedia returns the stored media rows of one artwork in display order.
func (s *Service) ListMedia(ctx context.Context, artworkID int) ([]models.ArtworkMedia, error) {
	var rows []models.ArtworkMedia
	err := s.db.WithContext(ctx).
		Where("artwork_id = ?", artworkID).
		Order("sort_order ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing media for artwork %d: %w", artworkID, err)
	}
	return rows, nil
}

// Preview resolves one artwork's records from the current bucket contents
// without touching the database.
func (s *Service) Preview(ctx context.Context, artworkID int) ([]models.ArtworkMedia, error) {
	listing := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    fmt.Sprintf("%03d/", artworkID),
		Recursive: true,
	})

	var assets []Asset
	for obj := range listing {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: listing bucket %q: %v", ErrBucketUnavailable, s.bucket, obj.Err)
		}
		if asset, ok := ParseObjectKey(obj.Key); ok {
			assets = append(assets, asset)
		}
	}

	index := BuildIndex(assets)

	var records []models.ArtworkMedia
	for _, baseName := range index.BaseNames(artworkID) {
		record, _ := s.resolver.Resolve(artworkID, baseName, index[artworkID][baseName])
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}
