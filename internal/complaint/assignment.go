package complaint

import (
	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"
)

// ServiceCategory returns the member category that can serve c: the
// sub-category for maintenance complaints, the category otherwise.
func ServiceCategory(c *models.Complaint) string {
	if c.Category == config.CategoryMaintenance && c.SubCategory != "" {
		return c.SubCategory
	}
	return c.Category
}

// ValidateAssignment checks that member may be assigned to c. It is a pure
// function of its arguments; callers must pass a freshly looked up member.
func ValidateAssignment(member *models.Member, c *models.Complaint) error {
	if member == nil {
		return apperr.NewInvalidAssignment("member not found")
	}
	if !member.IsActive {
		return apperr.NewInvalidAssignment("member " + member.ID + " is inactive")
	}
	// Maintenance generalists can take any maintenance sub-category.
	if member.Category == ServiceCategory(c) || member.Category == c.Category {
		return nil
	}
	return apperr.NewInvalidAssignment("assigned member must belong to the same category/sub-category")
}
