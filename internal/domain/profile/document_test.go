package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ProfileDocumentTestSuite covers defaults and the shallow merge
type ProfileDocumentTestSuite struct {
	suite.Suite
}

func TestProfileDocumentTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileDocumentTestSuite))
}

func (suite *ProfileDocumentTestSuite) TestDefaults() {
	suite.Run("EveryKeyPresentAndNonNil", func() {
		doc := Defaults("u1")

		assert.Equal(suite.T(), "u1", doc[KeyID])
		for key, value := range doc {
			assert.NotNil(suite.T(), value, "default for %s must be concrete", key)
		}

		// every schema field must appear in the document
		keys := []string{
			"id", "email", "name", "heightCm", "weightKg", "age", "sex",
			"bodyFatPercentage", "activityLevel", "trainingExperience", "athleteType",
			"primaryGoal", "macroTargets", "tdee", "leanBodyMass",
			"dailyWeightLog", "vitalsLog", "manualMacroLog",
			"dietaryPreferences", "allergens", "mealStructure", "measurementSystem",
			"subscriptionStatus", "subscriptionPlan", "trialEndsAt",
			"dashboardSettings", "onboardingComplete", "theme",
		}
		for _, key := range keys {
			assert.Contains(suite.T(), doc, key)
		}
		assert.Len(suite.T(), doc, len(keys))
	})

	suite.Run("SentinelsAndMealStructure", func() {
		settings := DefaultSettings("u1")

		assert.Equal(suite.T(), SexNotSpecified, settings.Sex)
		assert.Equal(suite.T(), ActivityNotSpecified, settings.ActivityLevel)
		assert.Equal(suite.T(), GoalNotSpecified, settings.PrimaryGoal)
		assert.Empty(suite.T(), settings.DailyWeightLog)
		assert.NotNil(suite.T(), settings.DailyWeightLog)
		require.Len(suite.T(), settings.MealStructure, 4)
		assert.Equal(suite.T(), "Breakfast", settings.MealStructure[0].Name)
		assert.Equal(suite.T(), "Snacks", settings.MealStructure[3].Name)
	})

	suite.Run("CallsDoNotShareContainers", func() {
		first := Defaults("u1")
		second := Defaults("u1")

		log := first["dailyWeightLog"].([]any)
		first["dailyWeightLog"] = append(log, map[string]any{"date": "2024-01-01", "weightKg": 80.0})
		first["dashboardSettings"].(map[string]any)["showMacros"] = false

		assert.Empty(suite.T(), second["dailyWeightLog"])
		assert.Equal(suite.T(), true, second["dashboardSettings"].(map[string]any)["showMacros"])

		typed := DefaultSettings("u1")
		typed.Allergens = append(typed.Allergens, "peanut")
		typed.MealStructure[0].Name = "Brunch"
		fresh := DefaultSettings("u1")
		assert.Empty(suite.T(), fresh.Allergens)
		assert.Equal(suite.T(), "Breakfast", fresh.MealStructure[0].Name)
	})
}

func (suite *ProfileDocumentTestSuite) TestMergeWithDefaults() {
	suite.Run("PresentFieldOverridesDefault", func() {
		merged := MergeWithDefaults(Document{"weightKg": 82}, "u1")
		defaults := Defaults("u1")

		assert.Equal(suite.T(), 82, merged["weightKg"])
		for key, value := range defaults {
			if key == "weightKg" {
				continue
			}
			assert.Equal(suite.T(), value, merged[key], "field %s should keep its default", key)
		}
	})

	suite.Run("IDAlwaysFromCaller", func() {
		merged := MergeWithDefaults(Document{"id": "wrong"}, "u1")
		assert.Equal(suite.T(), "u1", merged[KeyID])
	})

	suite.Run("NestedObjectsReplacedWholesale", func() {
		merged := MergeWithDefaults(Document{
			KeyDashboardSettings: map[string]any{"showMacros": false},
		}, "u1")

		assert.Equal(suite.T(), map[string]any{"showMacros": false}, merged[KeyDashboardSettings])
	})

	suite.Run("NullReplacesDefault", func() {
		merged := MergeWithDefaults(Document{"allergens": nil}, "u1")

		value, present := merged["allergens"]
		assert.True(suite.T(), present)
		assert.Nil(suite.T(), value)
	})

	suite.Run("UnknownAndMistypedFieldsPassThrough", func() {
		merged := MergeWithDefaults(Document{"age": "thirty", "legacyFlag": true}, "u1")

		assert.Equal(suite.T(), "thirty", merged["age"])
		assert.Equal(suite.T(), true, merged["legacyFlag"])
	})

	suite.Run("NilPartialYieldsDefaults", func() {
		assert.Equal(suite.T(), Defaults("u1"), MergeWithDefaults(nil, "u1"))
	})

	suite.Run("PartialIsNotModified", func() {
		partial := Document{"id": "other", "weightKg": 70}
		MergeWithDefaults(partial, "u1")
		assert.Equal(suite.T(), Document{"id": "other", "weightKg": 70}, partial)
	})
}

func (suite *ProfileDocumentTestSuite) TestOverlayAndWithout() {
	base := Document{"weightKg": 80, "name": "Sam"}
	patch := Document{"weightKg": 79, "heightCm": 180}

	out := Overlay(base, patch)
	assert.Equal(suite.T(), Document{"weightKg": 79, "name": "Sam", "heightCm": 180}, out)
	assert.Equal(suite.T(), Document{"weightKg": 80, "name": "Sam"}, base)

	assert.Equal(suite.T(), Document{"name": "Sam"}, base.Without("weightKg", "missing"))
	assert.Contains(suite.T(), base, "weightKg")
}

func (suite *ProfileDocumentTestSuite) TestDecode() {
	suite.Run("MergedDocumentDecodes", func() {
		merged := MergeWithDefaults(Document{
			"weightKg":     82,
			"age":          "34",
			"sex":          "male",
			"macroTargets": map[string]any{"calories": 2400.0},
		}, "u1")

		settings, err := merged.Decode()
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "u1", settings.ID)
		assert.Equal(suite.T(), 82.0, settings.WeightKg)
		assert.Equal(suite.T(), 34, settings.Age)
		assert.Equal(suite.T(), SexMale, settings.Sex)
		assert.Equal(suite.T(), 2400.0, settings.MacroTargets.Calories)
		assert.Len(suite.T(), settings.MealStructure, 4)
	})

	suite.Run("UnconvertibleValueFails", func() {
		_, err := Document{"age": "thirty"}.Decode()
		assert.Error(suite.T(), err)
	})
}
