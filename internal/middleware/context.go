package middleware

const (
	// ContextUserID is the key for the exhibitor ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for the account role in gin context.
	ContextUserRole = "user_role"
	// ContextUserEmail is the key for the account email in gin context.
	ContextUserEmail = "user_email"
	// ContextClaims is the key for the full token claims in gin context.
	ContextClaims = "claims"
)
