// Package nutrition derives daily energy and macro targets from a profile.
package nutrition

import (
	"errors"
	"math"

	"github.com/mealwise/core/internal/domain/profile"
)

// ErrInsufficientData is returned when weight, height or age is missing
var ErrInsufficientData = errors.New("profile lacks weight, height or age")

// activityMultipliers maps activity levels to their TDEE multiplier.
// Unknown levels fall back to sedentary.
var activityMultipliers = map[profile.ActivityLevel]float64{
	profile.ActivitySedentary:  1.2,
	profile.ActivityLight:      1.375,
	profile.ActivityModerate:   1.55,
	profile.ActivityActive:     1.725,
	profile.ActivityVeryActive: 1.9,
}

// goalAdjustments scale TDEE into a calorie target
var goalAdjustments = map[profile.Goal]float64{
	profile.GoalLoseFat:    0.80,
	profile.GoalGainMuscle: 1.10,
	profile.GoalRecomp:     0.95,
}

// proteinPerKg is grams of protein per kg of body weight, by goal
var proteinPerKg = map[profile.Goal]float64{
	profile.GoalLoseFat:    2.2,
	profile.GoalGainMuscle: 2.0,
}

const (
	defaultProteinPerKg = 1.8
	fatCalorieShare     = 0.25
	kcalPerGramProtein  = 4
	kcalPerGramCarbs    = 4
	kcalPerGramFat      = 9
)

// Targets is the computed daily plan for a user
type Targets struct {
	BMR          float64              `json:"bmr"`
	TDEE         float64              `json:"tdee"`
	LeanBodyMass float64              `json:"leanBodyMass,omitempty"`
	Formula      string               `json:"formula"`
	Macros       profile.MacroTargets `json:"macros"`
}

// Compute derives targets from typed settings.
// Katch-McArdle is used when body fat is known, Mifflin-St Jeor otherwise.
func Compute(s profile.Settings) (Targets, error) {
	if s.WeightKg <= 0 || s.HeightCm <= 0 || s.Age <= 0 {
		return Targets{}, ErrInsufficientData
	}

	var t Targets
	if s.BodyFatPercentage > 0 && s.BodyFatPercentage < 100 {
		t.LeanBodyMass = s.WeightKg * (1 - s.BodyFatPercentage/100)
		t.BMR = 370 + 21.6*t.LeanBodyMass
		t.Formula = "katch-mcardle"
	} else {
		t.BMR = 10*s.WeightKg + 6.25*s.HeightCm - 5*float64(s.Age) + sexConstant(s.Sex)
		t.Formula = "mifflin-st-jeor"
	}

	multiplier, ok := activityMultipliers[s.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[profile.ActivitySedentary]
	}
	t.TDEE = t.BMR * multiplier

	calories := t.TDEE
	if adj, ok := goalAdjustments[s.PrimaryGoal]; ok {
		calories *= adj
	}

	perKg, ok := proteinPerKg[s.PrimaryGoal]
	if !ok {
		perKg = defaultProteinPerKg
	}
	protein := perKg * s.WeightKg
	fat := calories * fatCalorieShare / kcalPerGramFat
	carbs := (calories - protein*kcalPerGramProtein - fat*kcalPerGramFat) / kcalPerGramCarbs
	if carbs < 0 {
		carbs = 0
	}

	t.BMR = math.Round(t.BMR)
	t.TDEE = math.Round(t.TDEE)
	t.LeanBodyMass = round1(t.LeanBodyMass)
	t.Macros = profile.MacroTargets{
		Calories: math.Round(calories),
		Protein:  math.Round(protein),
		Carbs:    math.Round(carbs),
		Fat:      math.Round(fat),
	}
	return t, nil
}

// sexConstant is the Mifflin-St Jeor sex term; unspecified takes the midpoint
func sexConstant(sex profile.Sex) float64 {
	switch sex {
	case profile.SexMale:
		return 5
	case profile.SexFemale:
		return -161
	default:
		return -78
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
