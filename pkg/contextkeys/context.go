package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - *gorm.DB (пул или транзакция) в gin.Context и context.Context
	DBContextKey = contextKey("db")

	// UserIDKey и RoleKey заполняет AuthMiddleware
	UserIDKey = contextKey("userID")
	RoleKey   = contextKey("role")
)
