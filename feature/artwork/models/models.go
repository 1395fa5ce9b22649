package models

// Media kinds persisted in artwork_media.kind.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// ArtworkMedia is one displayable media entry of an artwork. Rows are fully
// recreated on every sync run; only ArtworkID is stable across runs.
type ArtworkMedia struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtworkID int     `gorm:"not null;index" json:"artwork_id"`
	Kind      string  `gorm:"size:16;not null" json:"kind"`
	ImageURL  string  `gorm:"size:1024;not null" json:"image_url"`
	VideoURL  *string `gorm:"size:1024" json:"video_url,omitempty"`
	SortOrder int     `gorm:"not null;default:0" json:"sort_order"`
	Valid     bool    `gorm:"not null;default:true" json:"valid"`
}

// TableName overrides the table name used by GORM.
func (ArtworkMedia) TableName() string {
	return "artwork_media"
}

// MediaColumns lists the columns a complete artwork_media table carries.
// The migrate command checks live schemas against it.
func MediaColumns() []string {
	return []string{"id", "artwork_id", "kind", "image_url", "video_url", "sort_order", "valid"}
}
