package skinanalysis

import (
	"math"
	"strings"
)

// Score converts raw detector scores plus subject age and gender into skin
// labels, an overall grade and a confidence value. It performs no I/O.
func Score(raw RawAttributeScores, gender string, age int) Assessment {
	ageFactor := subjectAgeFactor(age)
	isMale := strings.ToLower(gender) == "male"

	combined := combinedScore(raw)
	condition, grade := overallGrade(combined)

	return Assessment{
		Acne:               acneLabel(acneIndex(raw, ageFactor, isMale)),
		DarkCircles:        darkCircleLabel(darkCircleIndex(raw, ageFactor)),
		Blackheads:         blackheadLabel(blackheadIndex(raw)),
		SkinTone:           skinTone(raw),
		OverallCondition:   condition,
		SkinGrade:          grade,
		SkinMoisture:       skinMoisture(raw.Health),
		PoreVisibility:     poreVisibility(raw.Clarity),
		AnalysisConfidence: confidence(raw),
		RawScores: RawScoreEcho{
			AcneScore:       roundTo(raw.Acne, 3),
			HealthScore:     roundTo(raw.Health, 3),
			ClarityScore:    roundTo(raw.Clarity, 3),
			DarkCircleScore: roundTo(raw.DarkCircle, 3),
			BlackheadScore:  roundTo(raw.Blackhead, 3),
			StainScore:      roundTo(raw.Stain, 3),
			CombinedScore:   roundTo(combined, 3),
		},
	}
}

// subjectAgeFactor maps age onto [0,1], saturating at ageNormaliser years.
func subjectAgeFactor(age int) float64 {
	factor := math.Min(float64(age)/ageNormaliser, 1.0)
	if factor == 0 || math.IsNaN(factor) {
		return defaultAgeFactor
	}
	return factor
}

func acneIndex(raw RawAttributeScores, ageFactor float64, isMale bool) float64 {
	adjustment := (1 - ageFactor) * acneAgeWeight
	if isMale {
		adjustment += maleAcneOffset
	}
	return clamp01(raw.Acne*0.6 + (1-raw.Health)*0.2 + adjustment)
}

func darkCircleIndex(raw RawAttributeScores, ageFactor float64) float64 {
	return clamp01(raw.DarkCircle*0.8 + ageFactor*darkCircleAgeWeight)
}

func blackheadIndex(raw RawAttributeScores) float64 {
	return clamp01(raw.Blackhead*0.7 + (1-raw.Clarity)*0.3)
}

func combinedScore(raw RawAttributeScores) float64 {
	return clamp01(raw.Health*0.4 + raw.Clarity*0.3 + (1-raw.Acne)*0.2 + (1-raw.Stain)*0.1)
}

func acneLabel(index float64) string {
	switch {
	case index < AcneNoneBelow:
		return LabelNone
	case index < AcneVeryMildBelow:
		return LabelVeryMild
	case index < AcneMildBelow:
		return LabelMild
	case index < AcneModerateBelow:
		return LabelModerate
	default:
		return LabelSevere
	}
}

func darkCircleLabel(index float64) string {
	switch {
	case index < DarkCircleNoneBelow:
		return LabelNone
	case index < DarkCircleMildBelow:
		return LabelMild
	case index < DarkCircleModerateBelow:
		return LabelModerate
	default:
		return LabelHeavy
	}
}

func blackheadLabel(index float64) string {
	switch {
	case index < BlackheadNoneBelow:
		return LabelNone
	case index < BlackheadFewBelow:
		return LabelFew
	case index < BlackheadModerateBelow:
		return LabelModerate
	default:
		return LabelMany
	}
}

// skinTone evaluates the rules in order; the first match wins.
func skinTone(raw RawAttributeScores) string {
	switch {
	case raw.Health > RadiantHealthAbove && raw.Clarity > RadiantClarityAbove:
		return ToneRadiant
	case raw.Health > HealthyHealthAbove && raw.Stain < HealthyStainBelow:
		return ToneHealthy
	case raw.Stain > UnevenStainAbove || raw.Clarity < UnevenClarityBelow:
		return ToneUneven
	case raw.Health < DullHealthBelow:
		return ToneDull
	default:
		return ToneNormal
	}
}

func overallGrade(combined float64) (condition string, grade string) {
	switch {
	case combined > GradeAAbove:
		return ConditionExcellent, GradeA
	case combined > GradeBAbove:
		return ConditionGood, GradeB
	case combined > GradeCAbove:
		return ConditionFair, GradeC
	default:
		return ConditionNeedsCare, GradeD
	}
}

func skinMoisture(health float64) string {
	switch {
	case health > MoistureHighAbove:
		return LevelHigh
	case health > MoistureMediumAbove:
		return LevelMedium
	default:
		return LevelLow
	}
}

func poreVisibility(clarity float64) string {
	switch {
	case clarity > PoresMinimalAbove:
		return PoresMinimal
	case clarity > PoresVisibleAbove:
		return PoresVisible
	default:
		return PoresProminent
	}
}

// confidence averages health, clarity and the penalised acne and stain
// factors, as a percentage with one decimal.
func confidence(raw RawAttributeScores) float64 {
	factors := [...]float64{
		raw.Health,
		raw.Clarity,
		1 - math.Min(raw.Acne*2, 1),
		1 - math.Min(raw.Stain*1.5, 1),
	}
	var sum float64
	for _, f := range factors {
		sum += f
	}
	return roundTo(sum/float64(len(factors))*100, 1)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// roundTo rounds half up, matching how the mobile client formats scores.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}
