package userservice

// Роли пользователей в системе бронирования
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User модель пользователя из UserService
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin возвращает true, если пользователь администратор
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
