package models

import "errors"

var (
	// ErrPropertyNotFound объявление не существует
	ErrPropertyNotFound = errors.New("property not found")
	// ErrExtensionNotFound у объявления нет записи расширения нужного типа
	ErrExtensionNotFound = errors.New("extension not found")
	// ErrExtensionMismatch тип расширения не совпадает с property_type
	ErrExtensionMismatch = errors.New("extension type does not match property type")
	// ErrInvalidCategory неподдерживаемый property_type в фильтре
	ErrInvalidCategory = NewValidationError("invalid category")
)

// ValidationError ошибка входных данных, отдается клиенту как есть
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError создает новую ошибку валидации
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
