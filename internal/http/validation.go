package http

import (
	"log"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validationOnce sync.Once
	trans          ut.Translator
)

// registerValidation installs the notblank rule, json field names and English
// messages on gin's validator. Safe to call more than once.
func registerValidation() {
	validationOnce.Do(func() {
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")

		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Printf("Unexpected validator engine %T, validation messages are untranslated", binding.Validator.Engine())
			return
		}

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			log.Printf("Failed to register notblank validation: %v", err)
		}
		if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
			log.Printf("Failed to register validation translations: %v", err)
		}
		if err := validate.RegisterTranslation("notblank", trans, func(ut ut.Translator) error {
			return ut.Add("notblank", "{0} must not be blank", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("notblank", fe.Field())
			return t
		}); err != nil {
			log.Printf("Failed to register notblank translation: %v", err)
		}
	})
}

func translator() ut.Translator {
	registerValidation()
	return trans
}
