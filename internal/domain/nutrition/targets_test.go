package nutrition

import (
	"testing"

	"github.com/mealwise/core/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_MifflinStJeor(t *testing.T) {
	s := profile.DefaultSettings("u1")
	s.WeightKg = 80
	s.HeightCm = 180
	s.Age = 30
	s.Sex = profile.SexMale
	s.ActivityLevel = profile.ActivityModerate
	s.PrimaryGoal = profile.GoalMaintain

	targets, err := Compute(s)
	require.NoError(t, err)

	assert.Equal(t, "mifflin-st-jeor", targets.Formula)
	assert.Equal(t, 1780.0, targets.BMR)
	assert.Equal(t, 2759.0, targets.TDEE)
	assert.Equal(t, 2759.0, targets.Macros.Calories)
	assert.Equal(t, 144.0, targets.Macros.Protein)
	assert.Equal(t, 77.0, targets.Macros.Fat)
	assert.Equal(t, 373.0, targets.Macros.Carbs)
	assert.Zero(t, targets.LeanBodyMass)
}

func TestCompute_KatchMcArdleWithGoal(t *testing.T) {
	s := profile.DefaultSettings("u1")
	s.WeightKg = 80
	s.HeightCm = 180
	s.Age = 30
	s.BodyFatPercentage = 20
	s.PrimaryGoal = profile.GoalLoseFat

	targets, err := Compute(s)
	require.NoError(t, err)

	assert.Equal(t, "katch-mcardle", targets.Formula)
	assert.Equal(t, 64.0, targets.LeanBodyMass)
	assert.Equal(t, 1752.0, targets.BMR)
	assert.Equal(t, 2103.0, targets.TDEE, "unspecified activity counts as sedentary")
	assert.Equal(t, 1682.0, targets.Macros.Calories)
	assert.Equal(t, 176.0, targets.Macros.Protein)
}

func TestCompute_UnspecifiedSexUsesMidpoint(t *testing.T) {
	s := profile.DefaultSettings("u1")
	s.WeightKg = 60
	s.HeightCm = 165
	s.Age = 40

	targets, err := Compute(s)
	require.NoError(t, err)
	// 600 + 1031.25 - 200 - 78
	assert.Equal(t, 1353.0, targets.BMR)
}

func TestCompute_InsufficientData(t *testing.T) {
	_, err := Compute(profile.DefaultSettings("u1"))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCompute_CarbsNeverNegative(t *testing.T) {
	s := profile.DefaultSettings("u1")
	s.WeightKg = 200
	s.HeightCm = 150
	s.Age = 90
	s.Sex = profile.SexFemale
	s.PrimaryGoal = profile.GoalLoseFat

	targets, err := Compute(s)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, targets.Macros.Carbs, 0.0)
}
