package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

// ErrValidation wraps every rejected create or update.
var ErrValidation = errors.New("validation failed")

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("industry", func(fl validator.FieldLevel) bool {
		return domain.Industry(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseJobStatus(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("activitytype", func(fl validator.FieldLevel) bool {
		return domain.ActivityType(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("goaltype", func(fl validator.FieldLevel) bool {
		return domain.GoalType(fl.Field().String()).IsValid()
	})
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func validateVar(field string, v interface{}, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return fmt.Errorf("%w: %s: failed %s", ErrValidation, field, tag)
	}
	return nil
}
