package artwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want Asset
		ok   bool
	}{
		{
			name: "Still",
			key:  "001/010_cover.jpg",
			want: Asset{Key: "001/010_cover.jpg", ArtworkID: 1, BaseName: "010_cover", Ext: "jpg"},
			ok:   true,
		},
		{
			name: "Motion",
			key:  "042/005_loop.mp4",
			want: Asset{Key: "042/005_loop.mp4", ArtworkID: 42, BaseName: "005_loop", Ext: "mp4"},
			ok:   true,
		},
		{
			name: "UppercaseExtension",
			key:  "007/020_detail.JPG",
			want: Asset{Key: "007/020_detail.JPG", ArtworkID: 7, BaseName: "020_detail", Ext: "jpg"},
			ok:   true,
		},
		{
			name: "ZeroFolder",
			key:  "000/010_front.jpg",
			want: Asset{Key: "000/010_front.jpg", ArtworkID: 0, BaseName: "010_front", Ext: "jpg"},
			ok:   true,
		},
		{
			name: "NestedFilenameKeepsFullBase",
			key:  "001/drafts/010.jpg",
			want: Asset{Key: "001/drafts/010.jpg", ArtworkID: 1, BaseName: "drafts/010", Ext: "jpg"},
			ok:   true,
		},
		{name: "NoSeparator", key: "readme.txt", ok: false},
		{name: "FolderTooShort", key: "01/010.jpg", ok: false},
		{name: "FolderTooLong", key: "0001/010.jpg", ok: false},
		{name: "FolderNotNumeric", key: "abc/010.jpg", ok: false},
		{name: "FolderMixed", key: "0a1/010.jpg", ok: false},
		{name: "NoExtension", key: "001/cover", ok: false},
		{name: "UnknownExtension", key: "001/010_cover.png", ok: false},
		{name: "MetadataFile", key: "001/010_cover.json", ok: false},
		{name: "Empty", key: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseObjectKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAsset_IsMotion(t *testing.T) {
	still, ok := ParseObjectKey("001/010.jpg")
	assert.True(t, ok)
	assert.False(t, still.IsMotion())

	motion, ok := ParseObjectKey("001/010.mp4")
	assert.True(t, ok)
	assert.True(t, motion.IsMotion())
}
