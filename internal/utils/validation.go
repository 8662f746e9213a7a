package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	validate.RegisterValidation("take_off_time", validateTakeOffTime)
	validate.RegisterValidation("rating", validateRating)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateTakeOffTime(fl validator.FieldLevel) bool {
	return IsTimeOfDay(fl.Field().String())
}

func validateRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Float()
	return rating >= MinRating && rating <= MaxRating
}

// ValidationErrors flattens validator errors into a field->message map
// for the API error envelope.
func ValidationErrors(err error) map[string]string {
	details := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			details[verr.Field()] = "failed on " + verr.Tag()
		}
	}
	return details
}

func IsValidName(name string) bool {
	if len(strings.TrimSpace(name)) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func IsValidPlateNumber(plate string) bool {
	plateRegex := regexp.MustCompile(`^[A-Z0-9\-\s]{2,20}$`)
	return plateRegex.MatchString(strings.ToUpper(plate))
}

func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	slugRegex := regexp.MustCompile(`[^a-z0-9]+`)
	return strings.Trim(slugRegex.ReplaceAllString(value, "-"), "-")
}
