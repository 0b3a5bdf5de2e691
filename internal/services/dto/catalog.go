package dto

import "encoding/json"

type CreateDescriptionRequest struct {
	ImageName          string `json:"image_name" validate:"required"`
	ImageType          string `json:"image_type" validate:"required"`
	DescriptionDetails string `json:"description_details" validate:"required"`
	// Raw so that an absent or non-integer priority falls back to 0
	// instead of rejecting the request.
	Priority json.RawMessage `json:"priority"`
}

// PriorityValue coerces the raw priority to an int, defaulting to 0.
func (r *CreateDescriptionRequest) PriorityValue() int {
	if len(r.Priority) == 0 {
		return 0
	}
	var p int
	if err := json.Unmarshal(r.Priority, &p); err != nil {
		// Accept "3.0"-style numbers the frontend produces from
		// Number() coercion.
		var f float64
		if err := json.Unmarshal(r.Priority, &f); err != nil {
			return 0
		}
		return int(f)
	}
	return p
}

type UpdateDescriptionRequest struct {
	ID                 string `json:"id" validate:"required"`
	DescriptionDetails string `json:"description_details" validate:"required"`
}

type RegisterImageURLRequest struct {
	DescriptionID string `json:"description_id" validate:"required"`
	ImageURL      string `json:"image_url" validate:"required"`
}

type DeleteDescriptionRequest struct {
	DescriptionID string `json:"description_id" validate:"required"`
}

type ImageURLEntry struct {
	ImageURL string `json:"image_url"`
}

type CatalogItem struct {
	ID                 string          `json:"id"`
	ImageName          string          `json:"image_name"`
	ImageType          string          `json:"image_type"`
	DescriptionDetails string          `json:"description_details"`
	Priority           int             `json:"priority"`
	CreatedOn          int64           `json:"created_on"`
	ImageURLs          []ImageURLEntry `json:"image_urls"`
}

type Pagination struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int64 `json:"totalPages"`
}

type CatalogPage struct {
	Data       []CatalogItem `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type CreateDescriptionResponse struct {
	ID string `json:"id"`
}

type UploadResponse struct {
	Path string `json:"path"`
}
