package scoring

// Radar axis names, in display order
const (
	AxisSolvency  = "Solvency"
	AxisIntegrity = "Integrity"
	AxisQuality   = "Quality"
)

// RadarPoint is one axis of the forensic radar, scaled to 0-100 where 100 is
// the edge of the safe zone.
type RadarPoint struct {
	Axis  string  `json:"axis"`
	Value float64 `json:"value"`
}

// NormalizeRadar scales the three scores onto a common 0-100 axis. The
// integrity axis is inverted since a lower M-Score is better.
func NormalizeRadar(z, m, q float64) []RadarPoint {
	return []RadarPoint{
		{Axis: AxisSolvency, Value: clampPercent((z / 3) * 100)},
		{Axis: AxisIntegrity, Value: clampPercent(((-2.0 - m) + 5) * 20)},
		{Axis: AxisQuality, Value: clampPercent(q * 100)},
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
