package widget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft - ввод пользователя до отправки
type Draft struct {
	Name    string `validate:"required"`
	Content string `validate:"required"`
}

// ValidationError - пустое имя или текст; запрос не отправляется
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("empty %s", strings.Join(e.Fields, " and "))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate проверяет только непустоту полей
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return &ValidationError{Fields: fields}
}
