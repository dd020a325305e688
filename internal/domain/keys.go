package domain

// CtxKey names the values the HTTP middlewares store on the gin context
type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"

	// Set by the auth middleware from the resolved account
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)
