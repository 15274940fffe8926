package skinanalysis

// Label thresholds. Index comparisons are strict: an index equal to a bound
// falls into the next band.
const (
	AcneNoneBelow     = 0.3
	AcneVeryMildBelow = 0.5
	AcneMildBelow     = 0.65
	AcneModerateBelow = 0.8

	DarkCircleNoneBelow     = 0.3
	DarkCircleMildBelow     = 0.55
	DarkCircleModerateBelow = 0.75

	BlackheadNoneBelow     = 0.25
	BlackheadFewBelow      = 0.5
	BlackheadModerateBelow = 0.7

	RadiantHealthAbove  = 0.75
	RadiantClarityAbove = 0.7
	HealthyHealthAbove  = 0.6
	HealthyStainBelow   = 0.3
	UnevenStainAbove    = 0.5
	UnevenClarityBelow  = 0.4
	DullHealthBelow     = 0.4

	GradeAAbove = 0.8
	GradeBAbove = 0.65
	GradeCAbove = 0.5

	MoistureHighAbove   = 0.75
	MoistureMediumAbove = 0.5

	PoresMinimalAbove = 0.75
	PoresVisibleAbove = 0.45
)

// Age/gender adjustment weights.
// TODO: the male acne offset has no documented clinical basis; keep until product review decides.
const (
	ageNormaliser        = 80.0
	defaultAgeFactor     = 0.5
	acneAgeWeight        = 0.2
	maleAcneOffset       = 0.1
	darkCircleAgeWeight  = 0.15
	defaultSubjectAge    = 25
	defaultSubjectGender = "Unknown"
)

// Labels.
const (
	LabelNone     = "None"
	LabelVeryMild = "Very Mild"
	LabelMild     = "Mild"
	LabelModerate = "Moderate"
	LabelSevere   = "Severe"
	LabelHeavy    = "Heavy"
	LabelFew      = "Few"
	LabelMany     = "Many"

	ToneRadiant = "Radiant"
	ToneHealthy = "Healthy"
	ToneUneven  = "Uneven"
	ToneDull    = "Dull"
	ToneNormal  = "Normal"

	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionFair      = "Fair"
	ConditionNeedsCare = "Needs Care"

	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"

	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"

	PoresMinimal   = "Minimal"
	PoresVisible   = "Visible"
	PoresProminent = "Prominent"
)
