package complaint

import (
	"slices"
	"strings"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
)

// ValidateCategory checks a category and sub-category pair.
// The sub-category is required for Maintenance and ignored otherwise.
func ValidateCategory(category, subCategory string) error {
	if category == "" {
		return apperr.NewValidation("category is required")
	}
	if !slices.Contains(config.ComplaintCategories, category) {
		return apperr.NewValidation("unknown category " + category)
	}
	if category != config.CategoryMaintenance {
		return nil
	}
	if subCategory == "" {
		return apperr.NewValidation("sub-category is required for Maintenance complaints")
	}
	if !slices.Contains(config.MaintenanceSubCategories, subCategory) {
		return apperr.NewValidation("unknown maintenance sub-category " + subCategory)
	}
	return nil
}

// normalizeCreate trims the input and validates it. Sub-categories are
// dropped for categories that don't use them.
func normalizeCreate(in CreateInput) (CreateInput, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.SubCategory = strings.TrimSpace(in.SubCategory)
	in.Description = strings.TrimSpace(in.Description)

	if err := ValidateCategory(in.Category, in.SubCategory); err != nil {
		return in, err
	}
	if in.Category != config.CategoryMaintenance {
		in.SubCategory = ""
	}
	if in.Description == "" {
		return in, apperr.NewValidation("description is required")
	}
	return in, nil
}
