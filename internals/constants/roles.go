package constants

import "fmt"

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// Role error message templates
const (
	ErrOnlyPublishersCanAccess = "❌ Only publisher or admin may access %s."
	ErrOnlyAdminsCanAccess     = "❌ Only admin may access %s."
)

func RoleErrorPublisher(feature string) string {
	return fmt.Sprintf(ErrOnlyPublishersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RolePublisher,
		RoleAdmin,
	}

	PublisherAndAbove = []string{
		RolePublisher,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
