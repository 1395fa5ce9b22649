package artwork

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/storage/mocks"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/feature/artwork/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSyncDB creates an in-memory SQLite DB with the media table migrated.
func setupSyncDB(t *testing.T, dbName string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ArtworkMedia{}))
	return db
}

// setupMockDB wires GORM's mysql dialector onto sqlmock for asserting the
// exact transaction sequence of a run.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mockDB
}

// newBucketClient mocks a reachable bucket delivering the given keys once.
func newBucketClient(keys ...string) *mocks.Client {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "touen-assets").Return(true, nil)
	client.On("ListObjects", mock.Anything, "touen-assets", mock.Anything).Return(mocks.Listing(keys...))
	return client
}

func newRunReconciler(db *gorm.DB, client *mocks.Client, logger *zap.Logger) *Reconciler {
	resolver := NewResolver("https://storage.googleapis.com", "touen-assets", logger)
	return NewReconciler(db, client, "touen-assets", "", resolver, logger)
}

func TestReconciler_Run(t *testing.T) {
	listing := []string{
		"001/010_cover.jpg",
		"001/010_cover.mp4",
		"001/020_extra.jpg",
		"002/005_only.mp4",
		"catalog.json",  // no artwork folder
		"001/notes.txt", // unrecognized extension
	}

	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	db := setupSyncDB(t, "run_e2e")
	// Stale rows: artwork 1 gets replaced, artwork 7 is absent from the
	// listing and must stay untouched.
	stale := []models.ArtworkMedia{
		{ArtworkID: 1, Kind: models.MediaKindImage, ImageURL: "https://old.example/1.jpg", SortOrder: 99, Valid: true},
		{ArtworkID: 7, Kind: models.MediaKindImage, ImageURL: "https://old.example/7.jpg", SortOrder: 1, Valid: true},
	}
	require.NoError(t, db.Create(&stale).Error)

	rec := newRunReconciler(db, newBucketClient(listing...), logger)
	report, err := rec.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalInserted)
	assert.Equal(t, 1, report.TotalDeleted)
	assert.Equal(t, 2, report.SkippedKeys)
	assert.Equal(t, 1, report.DroppedGroups)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Artworks, 2)
	assert.Equal(t, ArtworkResult{ArtworkID: 1, Deleted: 1, Inserted: 2}, report.Artworks[0])
	assert.Equal(t, ArtworkResult{ArtworkID: 2, Deleted: 0, Inserted: 0}, report.Artworks[1])

	var rows []models.ArtworkMedia
	require.NoError(t, db.Where("artwork_id = ?", 1).Order("sort_order").Find(&rows).Error)
	require.Len(t, rows, 2)

	video := rows[0]
	assert.Equal(t, models.MediaKindVideo, video.Kind)
	assert.Equal(t, 10, video.SortOrder)
	assert.Equal(t, "https://storage.googleapis.com/touen-assets/001/010_cover.jpg", video.ImageURL)
	require.NotNil(t, video.VideoURL)
	assert.Equal(t, "https://storage.googleapis.com/touen-assets/001/010_cover.mp4", *video.VideoURL)
	assert.True(t, video.Valid)

	image := rows[1]
	assert.Equal(t, models.MediaKindImage, image.Kind)
	assert.Equal(t, 20, image.SortOrder)
	assert.Nil(t, image.VideoURL)
	assert.True(t, image.Valid)

	// Artwork 2's lone motion asset produced no rows, only a diagnostic.
	var artwork2Count int64
	require.NoError(t, db.Model(&models.ArtworkMedia{}).Where("artwork_id = ?", 2).Count(&artwork2Count).Error)
	assert.Zero(t, artwork2Count)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Equal(t, int64(2), entry.ContextMap()["artwork_id"])

	var artwork7 []models.ArtworkMedia
	require.NoError(t, db.Where("artwork_id = ?", 7).Find(&artwork7).Error)
	require.Len(t, artwork7, 1)
	assert.Equal(t, "https://old.example/7.jpg", artwork7[0].ImageURL)
}

func TestReconciler_RunIdempotent(t *testing.T) {
	listing := []string{"001/010_cover.jpg", "001/010_cover.mp4", "001/020_extra.jpg"}
	db := setupSyncDB(t, "run_idempotent")

	first := newRunReconciler(db, newBucketClient(listing...), zap.NewNop())
	firstReport, err := first.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, firstReport.TotalDeleted)
	assert.Equal(t, 2, firstReport.TotalInserted)

	// Second run over the unchanged listing deletes and recreates every row.
	second := newRunReconciler(db, newBucketClient(listing...), zap.NewNop())
	secondReport, err := second.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, secondReport.TotalDeleted)
	assert.Equal(t, 2, secondReport.TotalInserted)

	var rows []models.ArtworkMedia
	require.NoError(t, db.Order("sort_order").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.Equal(t, models.MediaKindVideo, rows[0].Kind)
	assert.Equal(t, 10, rows[0].SortOrder)
	require.NotNil(t, rows[0].VideoURL)
	assert.Equal(t, "https://storage.googleapis.com/touen-assets/001/010_cover.mp4", *rows[0].VideoURL)
	assert.Equal(t, models.MediaKindImage, rows[1].Kind)
	assert.Equal(t, 20, rows[1].SortOrder)
}

func TestReconciler_DryRun(t *testing.T) {
	db := setupSyncDB(t, "run_dry")
	stale := models.ArtworkMedia{ArtworkID: 1, Kind: models.MediaKindImage, ImageURL: "https://old.example/1.jpg", Valid: true}
	require.NoError(t, db.Create(&stale).Error)

	listing := []string{"001/010_cover.jpg", "001/010_cover.mp4", "001/020_extra.jpg"}
	rec := newRunReconciler(db, newBucketClient(listing...), zap.NewNop())

	report, err := rec.Run(context.Background(), Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.TotalInserted)
	assert.Zero(t, report.TotalDeleted)

	// The table is untouched; the stale row is still the only one.
	var rows []models.ArtworkMedia
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "https://old.example/1.jpg", rows[0].ImageURL)
}

func TestReconciler_BucketUnavailable(t *testing.T) {
	t.Run("ExistenceCheckFails", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, "touen-assets").Return(false, errors.New("dns failure"))

		rec := newRunReconciler(setupSyncDB(t, "run_bucket_err"), client, zap.NewNop())
		report, err := rec.Run(context.Background(), Options{})
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrBucketUnavailable)
	})

	t.Run("BucketMissing", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, "touen-assets").Return(false, nil)

		rec := newRunReconciler(setupSyncDB(t, "run_bucket_missing"), client, zap.NewNop())
		report, err := rec.Run(context.Background(), Options{})
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrBucketUnavailable)
	})

	t.Run("ListingFailsBeforeAnyPersistence", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, "touen-assets").Return(true, nil)
		client.On("ListObjects", mock.Anything, "touen-assets", mock.Anything).
			Return(mocks.FailedListing(errors.New("expired token")))

		db := setupSyncDB(t, "run_listing_err")
		stale := models.ArtworkMedia{ArtworkID: 1, Kind: models.MediaKindImage, ImageURL: "https://old.example/1.jpg", Valid: true}
		require.NoError(t, db.Create(&stale).Error)

		rec := newRunReconciler(db, client, zap.NewNop())
		_, err := rec.Run(context.Background(), Options{})
		assert.ErrorIs(t, err, ErrBucketUnavailable)

		var count int64
		require.NoError(t, db.Model(&models.ArtworkMedia{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestReconciler_PrefixRestrictsListing(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "touen-assets").Return(true, nil)
	client.On("ListObjects", mock.Anything, "touen-assets", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "001/" && opts.Recursive
	})).Return(mocks.Listing("001/010_cover.jpg"))

	db := setupSyncDB(t, "run_prefix")
	resolver := NewResolver("https://storage.googleapis.com", "touen-assets", zap.NewNop())
	rec := NewReconciler(db, client, "touen-assets", "001/", resolver, zap.NewNop())

	report, err := rec.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalInserted)
	client.AssertExpectations(t)
}

func TestReconciler_AbortsOnDeleteFailure(t *testing.T) {
	db, mockDB := setupMockDB(t)

	mockDB.ExpectBegin()
	mockDB.ExpectExec("DELETE FROM `artwork_media`").WithArgs(1).WillReturnError(errors.New("table gone"))
	mockDB.ExpectRollback()

	rec := newRunReconciler(db, newBucketClient("001/010_cover.jpg"), zap.NewNop())
	report, err := rec.Run(context.Background(), Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	require.NotNil(t, report)
	assert.Empty(t, report.Artworks)
	assert.Zero(t, report.TotalInserted)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestReconciler_RollsBackDeleteOnInsertFailure(t *testing.T) {
	db, mockDB := setupMockDB(t)

	mockDB.ExpectBegin()
	mockDB.ExpectExec("DELETE FROM `artwork_media`").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 3))
	mockDB.ExpectExec("INSERT INTO `artwork_media`").WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectExec("INSERT INTO `artwork_media`").WillReturnError(errors.New("disk full"))
	mockDB.ExpectRollback()

	rec := newRunReconciler(db, newBucketClient("001/010_a.jpg", "001/020_b.jpg"), zap.NewNop())
	report, err := rec.Run(context.Background(), Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	// Nothing committed, so nothing is accounted.
	assert.Zero(t, report.TotalDeleted)
	assert.Zero(t, report.TotalInserted)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestReconciler_StopsAtFirstFailedArtwork(t *testing.T) {
	db, mockDB := setupMockDB(t)

	// Artwork 1 commits.
	mockDB.ExpectBegin()
	mockDB.ExpectExec("DELETE FROM `artwork_media`").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec("INSERT INTO `artwork_media`").WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectCommit()

	// Artwork 2 fails at its delete; artwork 3 must never be touched.
	mockDB.ExpectBegin()
	mockDB.ExpectExec("DELETE FROM `artwork_media`").WithArgs(2).WillReturnError(errors.New("lock timeout"))
	mockDB.ExpectRollback()

	client := newBucketClient("001/010.jpg", "002/010.jpg", "003/010.jpg")
	rec := newRunReconciler(db, client, zap.NewNop())
	report, err := rec.Run(context.Background(), Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	require.Len(t, report.Artworks, 1)
	assert.Equal(t, ArtworkResult{ArtworkID: 1, Deleted: 1, Inserted: 1}, report.Artworks[0])
	assert.Equal(t, 1, report.TotalDeleted)
	assert.Equal(t, 1, report.TotalInserted)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
