package validator

import (
	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные теги валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// приложение не должно стартовать с неполным набором правил
			logger.Fatal("failed to register custom validation tag", "tag", tag, "error", err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-notification-type", validateNotificationType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	return models.UserRole(value).IsValid()
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.NotificationType(value).IsValid()
}
