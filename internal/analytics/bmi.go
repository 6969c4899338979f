package analytics

// DefaultHeightCm is used when the user's height is unknown. It is an
// approximation for display purposes, not a guess at the actual height.
const DefaultHeightCm = 170.0

// BMICategory buckets a BMI value for display.
type BMICategory struct {
	Label     string `json:"label"`
	StyleHint string `json:"styleHint"`
}

// Standard BMI buckets as the product displays them.
var (
	CategoryUnderweight = BMICategory{Label: "저체중", StyleHint: "info"}
	CategoryNormal      = BMICategory{Label: "정상", StyleHint: "success"}
	CategoryOverweight  = BMICategory{Label: "과체중", StyleHint: "warning"}
	CategoryObese       = BMICategory{Label: "비만", StyleHint: "danger"}
)

// ComputeBMI returns weightKg / (heightCm/100)^2. A non-positive height
// falls back to DefaultHeightCm.
func ComputeBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		heightCm = DefaultHeightCm
	}
	meters := heightCm / 100
	return weightKg / (meters * meters)
}

// CategorizeBMI maps a BMI value to its category. Lower bounds are
// inclusive: 18.5 is normal, 25 is overweight, 30 is obese.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}
