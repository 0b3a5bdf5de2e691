package repositories

import (
	"database/sql"
	"errors"

	"aipromptweb_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDescriptionNotFound = errors.New("description not found")

// DescriptionImageRow is one row of the paginated left join between
// descriptions and image_urls. ImageURL is NULL for descriptions without
// images.
type DescriptionImageRow struct {
	ID                 string
	ImageName          string
	ImageType          string
	DescriptionDetails string
	Priority           int
	CreatedOn          int64
	ImageURL           sql.NullString
}

type DescriptionRepository interface {
	Count() (int64, error)
	// FindPage returns the joined rows for one page. The limit and offset
	// apply to descriptions, not joined rows, so a description with many
	// images is never split across pages.
	FindPage(limit, offset int) ([]DescriptionImageRow, error)
	Create(description *models.Description) error
	UpdateDetails(id, details string) error
	CreateImageURL(imageURL *models.ImageURL) error
	FindImageURLs(descriptionID string) ([]models.ImageURL, error)
	// DeleteWithImages removes the image rows and the description row in
	// one transaction.
	DeleteWithImages(id string) error
}

type DescriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewDescriptionRepository(db *gorm.DB) DescriptionRepository {
	return &DescriptionRepositoryImpl{db: db}
}

func (r *DescriptionRepositoryImpl) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Description{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *DescriptionRepositoryImpl) FindPage(limit, offset int) ([]DescriptionImageRow, error) {
	var rows []DescriptionImageRow
	err := r.db.Raw(`
		SELECT
			d.id,
			d.image_name,
			d.image_type,
			d.description_details,
			d.priority,
			d.created_on,
			i.image_url
		FROM (
			SELECT *
			FROM descriptions
			ORDER BY created_on DESC
			LIMIT ? OFFSET ?
		) d
		LEFT JOIN image_urls i
			ON i.description_id = d.id
		ORDER BY d.created_on DESC, i.created_on ASC
	`, limit, offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DescriptionRepositoryImpl) Create(description *models.Description) error {
	return r.db.Create(description).Error
}

func (r *DescriptionRepositoryImpl) UpdateDetails(id, details string) error {
	result := r.db.Model(&models.Description{}).
		Where("id = ?", id).
		Update("description_details", details)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDescriptionNotFound
	}
	return nil
}

func (r *DescriptionRepositoryImpl) CreateImageURL(imageURL *models.ImageURL) error {
	// An image row must reference an existing description.
	var count int64
	if err := r.db.Model(&models.Description{}).
		Where("id = ?", imageURL.DescriptionID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrDescriptionNotFound
	}

	return r.db.Create(imageURL).Error
}

func (r *DescriptionRepositoryImpl) FindImageURLs(descriptionID string) ([]models.ImageURL, error) {
	var imageURLs []models.ImageURL
	err := r.db.Where("description_id = ?", descriptionID).
		Order("created_on ASC").
		Find(&imageURLs).Error
	if err != nil {
		return nil, err
	}
	return imageURLs, nil
}

func (r *DescriptionRepositoryImpl) DeleteWithImages(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("description_id = ?", id).Delete(&models.ImageURL{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Description{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDescriptionNotFound
		}
		return nil
	})
}
