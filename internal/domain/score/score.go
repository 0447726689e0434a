// Package score normalizes GPAs onto the 4.0 scale and validates
// standardized test scores against their documented ranges.
package score

import "math"

// Recognized GPA scales, tried in order during auto-detection.
const (
	Scale4   = 4.0
	Scale5   = 5.0
	Scale10  = 10.0
	Scale100 = 100.0
)

// NormalizeGPA converts a raw GPA to the 4.0 scale. When declaredScale is
// nil the scale is auto-detected by magnitude. Values outside every known
// scale, and conversions that land outside [0,4], return nil rather than a
// clamped guess.
func NormalizeGPA(raw float64, declaredScale *float64) *float64 {
	if raw <= 0 || raw > Scale100 {
		return nil
	}

	scale := detectScale(raw, declaredScale)
	if scale == 0 {
		return nil
	}
	// A declared scale the value does not fit is a reporting error.
	if raw > scale {
		return nil
	}

	var gpa float64
	switch scale {
	case Scale4:
		gpa = raw
	case Scale5, Scale10:
		gpa = (raw / scale) * Scale4
	case Scale100:
		gpa = percentToGPA(raw)
	default:
		return nil
	}

	gpa = round2(gpa)
	if gpa < 0 || gpa > Scale4 {
		return nil
	}
	return &gpa
}

func detectScale(raw float64, declared *float64) float64 {
	if declared != nil {
		switch *declared {
		case Scale4, Scale5, Scale10, Scale100:
			return *declared
		}
		return 0
	}
	switch {
	case raw <= Scale4:
		return Scale4
	case raw <= Scale5:
		return Scale5
	case raw <= Scale10:
		return Scale10
	case raw <= Scale100:
		return Scale100
	}
	return 0
}

// percentToGPA maps a percentage grade onto the 4.0 scale using piecewise
// linear bands. The breakpoints are a heuristic approximation inherited from
// upstream data, kept bit-exact for compatibility; they are not a validated
// grading-system mapping.
func percentToGPA(pct float64) float64 {
	switch {
	case pct >= 90:
		return 3.7 + 0.03*(pct-90)
	case pct >= 80:
		return 3.0 + 0.07*(pct-80)
	case pct >= 70:
		return 2.3 + 0.07*(pct-70)
	case pct >= 60:
		return 2.0 + 0.03*(pct-60)
	default:
		return (pct / 60) * 2.0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
