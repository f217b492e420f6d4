package router

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	frtranslations "github.com/go-playground/validator/v10/translations/fr"

	apperrors "whiterabbit/internal/errors"
)

// CustomValidator wraps validator for Echo and reports failures per JSON
// field, in French.
type CustomValidator struct {
	validator *validator.Validate
	trans     ut.Translator
}

// NewValidator builds the request validator.
func NewValidator() (*CustomValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := fr.New()
	trans, _ := ut.New(locale, locale).GetTranslator(locale.Locale())
	if err := frtranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("register validation translations: %w", err)
	}

	return &CustomValidator{validator: v, trans: trans}, nil
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(cv.trans)
	}
	return &apperrors.ValidationError{Fields: fields}
}
