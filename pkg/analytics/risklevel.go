package analytics

//go:generate go run github.com/dmarkham/enumer -type RiskLevel -trimprefix RiskLevel -transform lower -json -output risklevel.gen.go

// RiskLevel buckets a 0-100 risk score.
type RiskLevel int

const (
	RiskLevelLow RiskLevel = iota
	RiskLevelMedium
	RiskLevelHigh
	RiskLevelCritical
)

// LevelForScore maps a 0-100 risk score onto a RiskLevel.
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLevelCritical
	case score >= 60:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}
