package model

// Role names are fixed. There is no roles table: the permission set of a role
// comes from the static table below, loaded once at process start and never
// mutated afterwards.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTranslator = "translator"
	RoleViewer     = "viewer"
)

// Permission codes are a stable wire contract shared by the session scheme
// and the API key scheme.
const (
	PermView               = "view"
	PermTranslate          = "translate"
	PermReview             = "review"
	PermManageTranslations = "manage_translations"
	PermManageLanguages    = "manage_languages"
	PermManageUsers        = "manage_users"
)

// AllPermissions is the full permission vocabulary, used to validate API key
// grants at creation time.
var AllPermissions = []string{
	PermView,
	PermTranslate,
	PermReview,
	PermManageTranslations,
	PermManageLanguages,
	PermManageUsers,
}

var rolePermissions = map[string][]string{
	RoleAdmin:      {PermManageUsers, PermManageLanguages, PermManageTranslations, PermReview, PermTranslate, PermView},
	RoleManager:    {PermManageTranslations, PermReview, PermTranslate, PermView},
	RoleTranslator: {PermTranslate, PermView},
	RoleViewer:     {PermView},
}

// PermissionsFor returns a copy of the permission set for role. Unknown roles
// get an empty set.
func PermissionsFor(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// RoleHas reports whether role grants the given permission.
func RoleHas(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidRole reports whether name is one of the four known roles.
func ValidRole(name string) bool {
	_, ok := rolePermissions[name]
	return ok
}

// ValidPermission reports whether code is part of the permission vocabulary.
func ValidPermission(code string) bool {
	for _, p := range AllPermissions {
		if p == code {
			return true
		}
	}
	return false
}
