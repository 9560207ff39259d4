package catalog

type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	Icon      string `json:"icon" binding:"max=64"`
	BasePrice int64  `json:"base_price" binding:"gte=0"`
}

// UpdateCategoryRequest changes only the fields that are set.
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=64"`
	Icon      *string `json:"icon" binding:"omitempty,max=64"`
	BasePrice *int64  `json:"base_price" binding:"omitempty,gte=0"`
	IsActive  *bool   `json:"is_active"`
}

type UpdateProviderProfileRequest struct {
	Category      *string `json:"category"`
	HourlyRate    *int64  `json:"hourly_rate" binding:"omitempty,gt=0"`
	AvailableFrom *string `json:"available_from" binding:"omitempty,datetime=15:04"`
	AvailableTo   *string `json:"available_to" binding:"omitempty,datetime=15:04"`
}
