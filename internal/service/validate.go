package service

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kube-rca/incident-desk/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 에러 메시지에 JSON 필드명을 사용
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "incident_status", model.IncidentStatuses)
	mustRegister(v, "incident_priority", model.IncidentPriorities)
	mustRegister(v, "incident_category", model.IncidentCategories)
	return v
}

func mustRegister(v *validator.Validate, tag string, allowed []string) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// validateStruct - 태그 검증 실패를 ErrValidation 으로 변환
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalid(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return invalid(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	case "incident_status":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(model.IncidentStatuses, ", "))
	case "incident_priority":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(model.IncidentPriorities, ", "))
	case "incident_category":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(model.IncidentCategories, ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}
