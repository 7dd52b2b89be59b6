package profile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/mealwise/core/internal/domain/profile"
	apperrors "github.com/mealwise/core/pkg/errors"
)

// patchRules constrain top-level scalar fields of a profile patch. Only keys
// present in a patch are checked; unknown keys pass through untouched.
var patchRules = map[string]string{
	"email":              "omitempty,email",
	"name":               "max=100",
	"heightCm":           "omitempty,gt=0,lte=300",
	"weightKg":           "omitempty,gt=0,lte=700",
	"age":                "omitempty,gte=1,lte=120",
	"sex":                "oneof=male female notSpecified",
	"bodyFatPercentage":  "omitempty,gt=0,lt=100",
	"activityLevel":      "oneof=sedentary light moderate active veryActive notSpecified",
	"trainingExperience": "oneof=beginner intermediate advanced notSpecified",
	"athleteType":        "oneof=strength endurance hybrid general notSpecified",
	"primaryGoal":        "oneof=loseFat gainMuscle maintain recomp notSpecified",
	"tdee":               "gte=0",
	"leanBodyMass":       "gte=0",
	"measurementSystem":  "oneof=metric imperial",
	"subscriptionStatus": "oneof=inactive trialing active pastDue canceled",
	"theme":              "oneof=system light dark",
}

// PatchValidator checks profile patches before they are stored
type PatchValidator struct {
	validate *validator.Validate
}

// NewPatchValidator creates a patch validator
func NewPatchValidator() *PatchValidator {
	return &PatchValidator{validate: validator.New()}
}

// Validate type-checks the patch against the profile schema and applies the
// field rules to its normalised values. A nil value clears a field and is
// always accepted.
func (v *PatchValidator) Validate(patch profile.Document) error {
	typed, err := patch.Decode()
	if err != nil {
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	}
	normalised := typed.Document()

	data := make(map[string]any)
	rules := make(map[string]any)
	for key, rule := range patchRules {
		if value, ok := patch[key]; !ok || value == nil {
			continue
		}
		data[key] = normalised[key]
		rules[key] = rule
	}

	failures := v.validate.ValidateMap(data, rules)
	if len(failures) == 0 {
		return nil
	}

	fields := make([]string, 0, len(failures))
	for field := range failures {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]apperrors.ValidationError, 0, len(fields))
	for _, field := range fields {
		details = append(details, toValidationError(field, patch[field], failures[field]))
	}
	return apperrors.NewValidationErrors(details)
}

func toValidationError(field string, value any, failure any) apperrors.ValidationError {
	out := apperrors.ValidationError{Field: field, Value: value, Tag: "invalid"}

	err, _ := failure.(error)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		out.Tag = fieldErrs[0].Tag()
		if param := fieldErrs[0].Param(); param != "" {
			out.Message = fmt.Sprintf("%s must satisfy %s=%s", field, out.Tag, param)
			return out
		}
		out.Message = fmt.Sprintf("%s must satisfy %s", field, out.Tag)
		return out
	}

	out.Message = fmt.Sprintf("%s is invalid", field)
	return out
}
