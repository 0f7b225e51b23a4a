package ui

// Band is the color classification of a glucose value.
type Band int

const (
	// BandNormal covers the in-range values, 80–180 mg/dL inclusive.
	BandNormal Band = iota
	// BandCaution covers the borderline ranges: above 180 up to 200, and
	// 70 up to but excluding 80.
	BandCaution
	// BandAlert covers values above 200 or below 70.
	BandAlert
)

// ClassifyBand maps a glucose value in mg/dL onto its display band.
func ClassifyBand(value float64) Band {
	switch {
	case value > 200:
		return BandAlert
	case value > 180:
		return BandCaution
	case value >= 80:
		return BandNormal
	case value >= 70:
		return BandCaution
	default:
		return BandAlert
	}
}

func (b Band) String() string {
	switch b {
	case BandNormal:
		return "normal"
	case BandCaution:
		return "caution"
	case BandAlert:
		return "alert"
	default:
		return "unknown"
	}
}
