package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"roomrent/dto"
	"roomrent/errors"
	"roomrent/types"
)

const MinPasswordLength = 8

// RegisterBindings adds the yearmonth tag to gin's validator and reports
// json field names in validation errors
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	v.RegisterTagNameFunc(jsonFieldName)
	return v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		return types.IsValidMonth(fl.Field().String())
	})
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// FromBindError turns a gin binding failure into a VALIDATION_ERROR naming the first bad field
func FromBindError(err error) *errors.AppError {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.Validation(fe.Field(), bindMessage(fe)).WithDetail("rule", fe.Tag())
	}
	return errors.Validation("", "malformed request body").WithDetail("cause", err.Error())
}

func bindMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "yearmonth":
		return fe.Field() + " must be a YYYY-MM month between 2000 and 2100"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

var zipCodeRegex = regexp.MustCompile(`^[A-Za-z0-9 -]{3,10}$`)

// ValidateRoom checks what binding tags cannot express
func ValidateRoom(req *dto.CreateRoomRequest) error {
	if req.MonthlyRent == nil || !req.MonthlyRent.IsPositive() {
		return errors.Validation("monthlyRent", "monthly rent must be positive")
	}
	if strings.TrimSpace(req.Title) == "" {
		return errors.Validation("title", "title must not be blank")
	}
	if strings.TrimSpace(req.City) == "" {
		return errors.Validation("city", "city must not be blank")
	}
	if !zipCodeRegex.MatchString(req.ZipCode) {
		return errors.Validation("zipCode", "zip code is invalid")
	}
	return nil
}

func ValidateRoomUpdate(req *dto.UpdateRoomRequest) error {
	if req.MonthlyRent != nil && !req.MonthlyRent.IsPositive() {
		return errors.Validation("monthlyRent", "monthly rent must be positive")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return errors.Validation("title", "title must not be blank")
	}
	if req.City != nil && strings.TrimSpace(*req.City) == "" {
		return errors.Validation("city", "city must not be blank")
	}
	if req.ZipCode != nil && !zipCodeRegex.MatchString(*req.ZipCode) {
		return errors.Validation("zipCode", "zip code is invalid")
	}
	return nil
}

func ValidateRegister(input *dto.RegisterInput) error {
	if len(input.Password) < MinPasswordLength {
		return errors.Validation("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}
