package config

const (
	// CategoryMaintenance is the only category that requires a sub-category.
	// Members serving maintenance work are registered under the sub-category.
	CategoryMaintenance = "Maintenance"

	// History note written with the implicit creation event.
	CreatedNote = "Complaint created"

	// Inbox listing cap.
	NotificationListLimit = 50

	// Redis channel used to push persisted notifications to websocket clients.
	NotificationChannel = "notifications"
)

// ComplaintCategories lists every accepted complaint category.
var ComplaintCategories = []string{
	CategoryMaintenance,
	"Food",
	"Security",
	"Cleanliness",
	"Internet",
	"Other",
}

// MaintenanceSubCategories lists the accepted sub-categories of Maintenance.
var MaintenanceSubCategories = []string{
	"Electrical",
	"Plumbing",
	"Carpentry",
	"Furniture",
	"Appliances",
}
