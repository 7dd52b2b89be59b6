// Package profile defines the user profile settings schema, its canonical
// defaults and the overlay of stored partial profiles onto those defaults.
package profile

// Sex used by BMR formulas
type Sex string

const (
	SexMale         Sex = "male"
	SexFemale       Sex = "female"
	SexNotSpecified Sex = "notSpecified"
)

// ActivityLevel describes day-to-day activity outside training
type ActivityLevel string

const (
	ActivitySedentary    ActivityLevel = "sedentary"
	ActivityLight        ActivityLevel = "light"
	ActivityModerate     ActivityLevel = "moderate"
	ActivityActive       ActivityLevel = "active"
	ActivityVeryActive   ActivityLevel = "veryActive"
	ActivityNotSpecified ActivityLevel = "notSpecified"
)

// TrainingExperience represents how long the user has trained
type TrainingExperience string

const (
	ExperienceBeginner     TrainingExperience = "beginner"
	ExperienceIntermediate TrainingExperience = "intermediate"
	ExperienceAdvanced     TrainingExperience = "advanced"
	ExperienceNotSpecified TrainingExperience = "notSpecified"
)

// AthleteType represents the kind of training the user does
type AthleteType string

const (
	AthleteStrength     AthleteType = "strength"
	AthleteEndurance    AthleteType = "endurance"
	AthleteHybrid       AthleteType = "hybrid"
	AthleteGeneral      AthleteType = "general"
	AthleteNotSpecified AthleteType = "notSpecified"
)

// Goal is the user's primary body-composition goal
type Goal string

const (
	GoalLoseFat      Goal = "loseFat"
	GoalGainMuscle   Goal = "gainMuscle"
	GoalMaintain     Goal = "maintain"
	GoalRecomp       Goal = "recomp"
	GoalNotSpecified Goal = "notSpecified"
)

// SubscriptionStatus mirrors the billing provider's subscription state
type SubscriptionStatus string

const (
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "pastDue"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// MacroTargets are daily targets in kcal and grams
type MacroTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// IsZero reports whether no target has been set
func (m MacroTargets) IsZero() bool {
	return m.Calories == 0 && m.Protein == 0 && m.Carbs == 0 && m.Fat == 0
}

// WeightEntry is one day of the weight log. Date is a calendar date (YYYY-MM-DD).
type WeightEntry struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}

// VitalsEntry is one day of the vitals log
type VitalsEntry struct {
	Date             string  `json:"date"`
	RestingHeartRate float64 `json:"restingHeartRate"`
	SleepHours       float64 `json:"sleepHours"`
	Steps            int     `json:"steps"`
	WaterLiters      float64 `json:"waterLiters"`
}

// MacroEntry is one day of manually logged intake
type MacroEntry struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealSlot is one slot of the user's daily meal structure
type MealSlot struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// DashboardSettings toggles dashboard widgets
type DashboardSettings struct {
	ShowMacros      bool `json:"showMacros"`
	ShowMenu        bool `json:"showMenu"`
	ShowWeightTrend bool `json:"showWeightTrend"`
	ShowVitals      bool `json:"showVitals"`
	ShowPantry      bool `json:"showPantry"`
}

// Settings is the complete, typed profile of a user
type Settings struct {
	// Identity
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	// Anthropometrics
	HeightCm           float64            `json:"heightCm"`
	WeightKg           float64            `json:"weightKg"`
	Age                int                `json:"age"`
	Sex                Sex                `json:"sex"`
	BodyFatPercentage  float64            `json:"bodyFatPercentage"`
	ActivityLevel      ActivityLevel      `json:"activityLevel"`
	TrainingExperience TrainingExperience `json:"trainingExperience"`
	AthleteType        AthleteType        `json:"athleteType"`

	// Goals and targets
	PrimaryGoal  Goal         `json:"primaryGoal"`
	MacroTargets MacroTargets `json:"macroTargets"`
	TDEE         float64      `json:"tdee"`
	LeanBodyMass float64      `json:"leanBodyMass"`

	// Logs, keyed by calendar date
	DailyWeightLog []WeightEntry `json:"dailyWeightLog"`
	VitalsLog      []VitalsEntry `json:"vitalsLog"`
	ManualMacroLog []MacroEntry  `json:"manualMacroLog"`

	// Preferences
	DietaryPreferences []string   `json:"dietaryPreferences"`
	Allergens          []string   `json:"allergens"`
	MealStructure      []MealSlot `json:"mealStructure"`
	MeasurementSystem  string     `json:"measurementSystem"`

	// Subscription
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	SubscriptionPlan   string             `json:"subscriptionPlan"`
	TrialEndsAt        string             `json:"trialEndsAt"`

	// UI
	DashboardSettings  DashboardSettings `json:"dashboardSettings"`
	OnboardingComplete bool              `json:"onboardingComplete"`
	Theme              string            `json:"theme"`
}
