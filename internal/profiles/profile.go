package profiles

// Profile is the single persisted record pairing an image with a caption.
type Profile struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	ImageURL string `gorm:"column:imageUrl;not null"`
	Caption  string `gorm:"column:caption;not null"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (Profile) TableName() string {
	return "ProfileTable"
}
