package artwork

import (
	"strconv"
	"strings"
)

// Extensions recognized as artwork media. Stills double as posters for
// motion assets sharing their base name.
const (
	ExtStill  = "jpg"
	ExtMotion = "mp4"
)

// Asset is one bucket object successfully parsed into the artwork layout.
type Asset struct {
	// Key is the full object key, e.g. "001/010_cover.jpg".
	Key string
	// ArtworkID is the integer value of the three-digit folder segment.
	ArtworkID int
	// BaseName is the filename without its extension; it pairs a still with
	// its motion asset.
	BaseName string
	// Ext is the lower-cased extension, one of ExtStill or ExtMotion.
	Ext string
}

// IsMotion reports whether the asset is a motion (video) file.
func (a Asset) IsMotion() bool {
	return a.Ext == ExtMotion
}

// ParseObjectKey parses a bucket key of the form <three digits>/<name>.<ext>
// into an Asset. Keys of any other shape are not artwork media; they report
// ok=false and are filtered out of the run rather than failing it.
func ParseObjectKey(key string) (Asset, bool) {
	folder, filename, found := strings.Cut(key, "/")
	if !found {
		return Asset{}, false
	}

	artworkID, ok := parseArtworkFolder(folder)
	if !ok {
		return Asset{}, false
	}

	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return Asset{}, false
	}

	ext := strings.ToLower(filename[dot+1:])
	if ext != ExtStill && ext != ExtMotion {
		return Asset{}, false
	}

	return Asset{
		Key:       key,
		ArtworkID: artworkID,
		BaseName:  filename[:dot],
		Ext:       ext,
	}, true
}

// parseArtworkFolder accepts exactly three decimal digits.
func parseArtworkFolder(folder string) (int, bool) {
	if len(folder) != 3 {
		return 0, false
	}
	for i := 0; i < len(folder); i++ {
		if folder[i] < '0' || folder[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(folder)
	if err != nil {
		return 0, false
	}
	return id, true
}
