package models

// Description is a catalog entry. CreatedOn is epoch milliseconds, set once
// at creation and never updated; the read path orders by it descending.
type Description struct {
	BaseModel
	ImageName          string `gorm:"not null" json:"image_name"`
	ImageType          string `gorm:"not null;index" json:"image_type"`
	DescriptionDetails string `gorm:"not null" json:"description_details"`
	Priority           int    `gorm:"not null;default:0" json:"priority"`
	CreatedOn          int64  `gorm:"not null;index" json:"created_on"`

	ImageURLs []ImageURL `gorm:"foreignKey:DescriptionID;constraint:OnDelete:CASCADE" json:"-"`
}

// ImageURL links one stored object to its Description. ImageURL holds the
// object-store key (or a fully qualified URL for externally hosted images).
type ImageURL struct {
	BaseModel
	DescriptionID string `gorm:"type:uuid;not null;index" json:"description_id"`
	ImageURL      string `gorm:"not null" json:"image_url"`
	CreatedOn     int64  `gorm:"not null" json:"created_on"`
}
