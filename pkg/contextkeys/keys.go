package contextkeys

type contextKey string

const (
	UserIDKey             contextKey = "UserID"
	UserRoleKey           contextKey = "UserRole"
	UserSectorIDKey       contextKey = "UserSectorID"
	UserPermissionsMapKey contextKey = "userPermissionsMap"
)
