package artwork

import (
	"context"
	"fmt"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/storage"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/feature/artwork/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options control a single reconciliation run.
type Options struct {
	// DryRun resolves the bucket inventory and reports what a run would
	// insert, without opening a transaction or touching the table.
	DryRun bool
}

// ArtworkResult is the accounting of one artwork's replace.
type ArtworkResult struct {
	ArtworkID int `json:"artwork_id"`
	Deleted   int `json:"deleted"`
	Inserted  int `json:"inserted"`
}

// RunReport is the accounting of one reconciliation run. It exists for the
// duration of the run only; nothing of it is persisted.
type RunReport struct {
	RunID         string          `json:"run_id"`
	DryRun        bool            `json:"dry_run"`
	Artworks      []ArtworkResult `json:"artworks"`
	TotalDeleted  int             `json:"total_deleted"`
	TotalInserted int             `json:"total_inserted"`
	// SkippedKeys counts listed objects whose keys did not parse as artwork
	// media.
	SkippedKeys int `json:"skipped_keys"`
	// DroppedGroups counts base groups dropped for missing a poster still.
	DroppedGroups int `json:"dropped_groups"`
}

// Reconciler replaces the artwork_media rows of every artwork present in the
// bucket with rows resolved from the current listing. Replacement is
// transactional per artwork: readers never observe an artwork half-replaced.
type Reconciler struct {
	db       *gorm.DB
	client   storage.Client
	bucket   string
	prefix   string
	resolver *Resolver
	logger   *zap.Logger
}

// NewReconciler wires a reconciler from its collaborators. prefix restricts
// the listing; empty means the whole bucket.
func NewReconciler(db *gorm.DB, client storage.Client, bucket, prefix string, resolver *Resolver, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		db:       db,
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		resolver: resolver,
		logger:   logger,
	}
}

// Run lists the bucket, groups the complete inventory, then replaces each
// artwork's rows in ascending artwork order. The first persistence failure
// rolls back the artwork being replaced and aborts the run; earlier artworks
// stay committed, and the report reflects only committed work.
func (r *Reconciler) Run(ctx context.Context, opts Options) (*RunReport, error) {
	report := &RunReport{
		RunID:  uuid.NewString(),
		DryRun: opts.DryRun,
	}

	log := r.logger.With(zap.String("run_id", report.RunID))
	log.Info("Starting artwork media sync",
		zap.String("bucket", r.bucket),
		zap.String("prefix", r.prefix),
		zap.Bool("dry_run", opts.DryRun),
	)

	ok, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: checking bucket %q: %v", ErrBucketUnavailable, r.bucket, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: bucket %q does not exist", ErrBucketUnavailable, r.bucket)
	}

	// The full inventory must be known before any replace begins; an
	// artwork's assets are not guaranteed to arrive contiguously.
	assets, skipped, err := r.listAssets(ctx, log)
	if err != nil {
		return nil, err
	}
	report.SkippedKeys = skipped

	index := BuildIndex(assets)

	for _, artworkID := range index.ArtworkIDs() {
		result, dropped, err := r.replaceArtwork(ctx, artworkID, index, opts.DryRun)
		report.DroppedGroups += dropped
		if err != nil {
			return report, err
		}

		report.Artworks = append(report.Artworks, result)
		report.TotalDeleted += result.Deleted
		report.TotalInserted += result.Inserted

		log.Info("Artwork replaced",
			zap.Int("artwork_id", result.ArtworkID),
			zap.Int("inserted", result.Inserted),
			zap.Int("deleted", result.Deleted),
		)
	}

	log.Info("Artwork media sync finished",
		zap.Int("artworks", len(report.Artworks)),
		zap.Int("total_deleted", report.TotalDeleted),
		zap.Int("total_inserted", report.TotalInserted),
		zap.Int("skipped_keys", report.SkippedKeys),
		zap.Int("dropped_groups", report.DroppedGroups),
	)

	return report, nil
}

// listAssets drains the bucket listing into parsed assets. Keys that do not
// match the artwork layout are counted and excluded, never fatal.
func (r *Reconciler) listAssets(ctx context.Context, log *zap.Logger) ([]Asset, int, error) {
	listing := r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{
		Prefix:    r.prefix,
		Recursive: true,
	})

	var assets []Asset
	skipped := 0
	for obj := range listing {
		if obj.Err != nil {
			return nil, 0, fmt.Errorf("%w: listing bucket %q: %v", ErrBucketUnavailable, r.bucket, obj.Err)
		}

		asset, ok := ParseObjectKey(obj.Key)
		if !ok {
			skipped++
			log.Debug("Ignoring non-media object", zap.String("key", obj.Key))
			continue
		}
		assets = append(assets, asset)
	}

	return assets, skipped, nil
}

// replaceArtwork deletes and reinserts one artwork's rows inside a single
// transaction. Counts are reported only after the commit succeeds.
func (r *Reconciler) replaceArtwork(ctx context.Context, artworkID int, index Index, dryRun bool) (ArtworkResult, int, error) {
	result := ArtworkResult{ArtworkID: artworkID}

	records := make([]*models.ArtworkMedia, 0, len(index[artworkID]))
	droppedGroups := 0
	for _, baseName := range index.BaseNames(artworkID) {
		record, dropped := r.resolver.Resolve(artworkID, baseName, index[artworkID][baseName])
		if dropped {
			droppedGroups++
		}
		if record == nil {
			continue
		}
		records = append(records, record)
	}

	if dryRun {
		result.Inserted = len(records)
		return result, droppedGroups, nil
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return result, droppedGroups, fmt.Errorf("%w: begin for artwork %d: %v", ErrPersistence, artworkID, tx.Error)
	}

	deletion := tx.Where("artwork_id = ?", artworkID).Delete(&models.ArtworkMedia{})
	if deletion.Error != nil {
		tx.Rollback()
		return result, droppedGroups, fmt.Errorf("%w: delete for artwork %d: %v", ErrPersistence, artworkID, deletion.Error)
	}

	for _, record := range records {
		if err := tx.Create(record).Error; err != nil {
			tx.Rollback()
			return result, droppedGroups, fmt.Errorf("%w: insert %s %q for artwork %d: %v",
				ErrPersistence, record.Kind, record.ImageURL, artworkID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return result, droppedGroups, fmt.Errorf("%w: commit for artwork %d: %v", ErrPersistence, artworkID, err)
	}

	result.Deleted = int(deletion.RowsAffected)
	result.Inserted = len(records)
	return result, droppedGroups, nil
}
