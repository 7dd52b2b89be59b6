package profile

// Default meal structure slot names, in display order
var defaultMealSlots = []string{"Breakfast", "Lunch", "Dinner", "Snacks"}

// DefaultSettings returns the canonical profile for a user. Every call builds
// its own slices so callers may mutate the result freely.
func DefaultSettings(userID string) Settings {
	meals := make([]MealSlot, 0, len(defaultMealSlots))
	for _, name := range defaultMealSlots {
		meals = append(meals, MealSlot{Name: name, Enabled: true})
	}

	return Settings{
		ID:    userID,
		Email: "",
		Name:  "",

		HeightCm:           0,
		WeightKg:           0,
		Age:                0,
		Sex:                SexNotSpecified,
		BodyFatPercentage:  0,
		ActivityLevel:      ActivityNotSpecified,
		TrainingExperience: ExperienceNotSpecified,
		AthleteType:        AthleteNotSpecified,

		PrimaryGoal:  GoalNotSpecified,
		MacroTargets: MacroTargets{},
		TDEE:         0,
		LeanBodyMass: 0,

		DailyWeightLog: []WeightEntry{},
		VitalsLog:      []VitalsEntry{},
		ManualMacroLog: []MacroEntry{},

		DietaryPreferences: []string{},
		Allergens:          []string{},
		MealStructure:      meals,
		MeasurementSystem:  "metric",

		SubscriptionStatus: SubscriptionInactive,
		SubscriptionPlan:   "free",
		TrialEndsAt:        "",

		DashboardSettings: DashboardSettings{
			ShowMacros:      true,
			ShowMenu:        true,
			ShowWeightTrend: true,
			ShowVitals:      true,
			ShowPantry:      true,
		},
		OnboardingComplete: false,
		Theme:              "system",
	}
}

// Defaults returns the canonical profile for a user in document form
func Defaults(userID string) Document {
	return DefaultSettings(userID).Document()
}
