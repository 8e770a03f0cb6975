package constants

import "fmt"

const (
	RoleClient    = "client"
	RoleTherapist = "therapist"
	RoleAdmin     = "admin"
)

// Template pesan error role
const ErrOnlyTherapistsCanAccess = "Only therapist or admin roles may access %s."

func RoleErrorTherapist(feature string) string {
	return fmt.Sprintf(ErrOnlyTherapistsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleClient,
		RoleTherapist,
		RoleAdmin,
	}

	TherapistAndAbove = []string{
		RoleTherapist,
		RoleAdmin,
	}
)

// IsKnownRole reports whether role is one of AllRoles.
func IsKnownRole(role string) bool {
	return HasAnyRole(role, AllRoles)
}

// HasAnyRole reports whether role is in allowed.
func HasAnyRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
