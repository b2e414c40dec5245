package Controllers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"

	"CareBridge/Models"
	"CareBridge/Workflow"
)

// Validator checks request bodies and renders failures as English messages
// keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

type customRule struct {
	tag     string
	message string
	fn      validator.Func
}

var customRules = []customRule{
	{"date", "{0} must be a YYYY-MM-DD date", func(fl validator.FieldLevel) bool {
		return Workflow.ValidateDate(fl.Field().String()) == nil
	}},
	{"hhmm", "{0} must be a 24-hour HH:MM time", func(fl validator.FieldLevel) bool {
		_, err := Workflow.ParseClock(fl.Field().String())
		return err == nil
	}},
	{"task_status", "{0} must be one of: yet to start, started, in progress, pending, completed", func(fl validator.FieldLevel) bool {
		return Models.TaskStatus(fl.Field().String()).IsValid()
	}},
	{"mood", "{0} must be one of: excellent, good, stable, concerning", func(fl validator.FieldLevel) bool {
		return Models.Mood(fl.Field().String()).IsValid()
	}},
	{"notblank", "{0} must not be blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}},
}

func NewValidator() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	for _, rule := range customRules {
		if err := v.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, err
		}
		message := rule.message
		err := v.RegisterTranslation(rule.tag, trans,
			func(ut ut.Translator) error { return ut.Add(rule.tag, message, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(fe.Tag(), fe.Field())
				return t
			})
		if err != nil {
			return nil, err
		}
	}
	return &Validator{validate: v, trans: trans}, nil
}

// RequestError is a malformed or invalid request body.
type RequestError struct {
	Message string
	Fields  map[string]string
}

func (e *RequestError) Error() string { return e.Message }

// Bind parses the JSON body into out and validates it.
func (v *Validator) Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &RequestError{Message: "invalid request body: " + err.Error()}
	}
	return v.Check(out)
}

func (v *Validator) Check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestError{Message: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(v.trans)
	}
	return &RequestError{Message: "validation failed", Fields: fields}
}
