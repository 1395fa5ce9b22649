package artwork

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/feature/artwork/models"

	"go.uber.org/zap"
)

// Resolver turns base groups into media records and bucket keys into the
// public URLs stored in them.
type Resolver struct {
	urlPrefix string
	logger    *zap.Logger
}

// NewResolver creates a resolver producing URLs under
// <publicBaseURL>/<bucket>.
func NewResolver(publicBaseURL, bucket string, logger *zap.Logger) *Resolver {
	return &Resolver{
		urlPrefix: strings.TrimSuffix(publicBaseURL, "/") + "/" + bucket,
		logger:    logger,
	}
}

// Resolve decides the media record for one base group:
//
//  1. a motion asset without a poster still is diagnosed and dropped,
//  2. motion plus still yield one video record, the still as poster,
//  3. a lone still yields one image record,
//  4. an empty group yields nothing.
//
// The second return reports case 1, so runs can account for dropped groups.
func (r *Resolver) Resolve(artworkID int, baseName string, grp *BaseGroup) (*models.ArtworkMedia, bool) {
	switch {
	case grp.Motion != nil && grp.Still == nil:
		r.logger.Warn("Motion asset has no poster still, skipping",
			zap.Int("artwork_id", artworkID),
			zap.String("base_name", baseName),
			zap.String("key", grp.Motion.Key),
		)
		return nil, true

	case grp.Motion != nil && grp.Still != nil:
		videoURL := r.ObjectURL(grp.Motion.Key)
		return &models.ArtworkMedia{
			ArtworkID: artworkID,
			Kind:      models.MediaKindVideo,
			ImageURL:  r.ObjectURL(grp.Still.Key),
			VideoURL:  &videoURL,
			SortOrder: sortOrderFor(baseName),
			Valid:     true,
		}, false

	case grp.Still != nil:
		return &models.ArtworkMedia{
			ArtworkID: artworkID,
			Kind:      models.MediaKindImage,
			ImageURL:  r.ObjectURL(grp.Still.Key),
			SortOrder: sortOrderFor(baseName),
			Valid:     true,
		}, false

	default:
		return nil, false
	}
}

// ObjectURL builds the public URL of a bucket object. Each path segment is
// percent-encoded on its own; encoding the whole key at once would escape
// the separators.
func (r *Resolver) ObjectURL(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return r.urlPrefix + "/" + strings.Join(segments, "/")
}

// sortOrderFor derives the display order from the leading digit run of a
// base name ("010_scene1" orders at 10). Base names without one, or with a
// run too large for an int, order at zero.
func sortOrderFor(baseName string) int {
	end := 0
	for end < len(baseName) && baseName[end] >= '0' && baseName[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	order, err := strconv.Atoi(baseName[:end])
	if err != nil {
		return 0
	}
	return order
}
