package dto

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ на вход
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
