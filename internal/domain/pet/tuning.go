package pet

const (
	StatMax  = 100
	CoinsMax = 9999

	RegenIntervalMinutes = 5
	RegenMaxIncrements   = 40

	DecayStepMinutes     = 30
	DecaySatietyPerStep  = 5
	DecayMoodPerStep     = 3
	DecayHealthPerStep   = 2
	DecayHungryThreshold = 30

	PlayMinSatiety  = 10
	PlaySatietyCost = 6
	PlayMoodGain    = 12

	DefaultMood       = 70
	DefaultSatiety    = 50
	DefaultHealth     = 100
	StartingCoins     = 100
	DefaultPetID      = "dog"
	DefaultBackground = "default"

	HighSavingsRate        = 0.20
	ModestSavingsRate      = 0.10
	MoodBoostHighSavings   = 8
	MoodBoostModestSavings = 4
	MoodPenaltyOverspend   = 10
)
