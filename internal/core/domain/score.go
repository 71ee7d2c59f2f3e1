package domain

import "math"

// Score thresholds. Each tier includes its lower bound.
const (
	ModerateThreshold = 0.3
	HighThreshold     = 0.6
)

// ScoreLevel is the display category of a bias score.
type ScoreLevel int

// Score levels.
const (
	LevelLow ScoreLevel = iota
	LevelModerate
	LevelHigh
)

// LevelForScore maps a score in [0,1] to its category:
// below 0.3 is low, below 0.6 is moderate, anything else is high.
func LevelForScore(score float64) ScoreLevel {
	switch {
	case score < ModerateThreshold:
		return LevelLow
	case score < HighThreshold:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// String returns "Low", "Moderate" or "High".
func (l ScoreLevel) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelModerate:
		return "Moderate"
	case LevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Label returns the score card label, e.g. "Moderate Bias".
func (l ScoreLevel) Label() string {
	return l.String() + " Bias"
}

// ScoreLabel returns the category name for a score.
func ScoreLabel(score float64) string {
	return LevelForScore(score).String()
}

// Tier is a colour tier used by the views.
type Tier int

// Colour tiers, from best to worst.
const (
	TierGreen Tier = iota
	TierYellow
	TierRed
	TierOrange
)

// Tier returns the colour tier of a score level.
func (l ScoreLevel) Tier() Tier {
	switch l {
	case LevelLow:
		return TierGreen
	case LevelModerate:
		return TierYellow
	default:
		return TierRed
	}
}

// HistoryTier is the colour of a score badge in the history list.
// Unlike the score card its upper bounds are inclusive.
func HistoryTier(score float64) Tier {
	switch {
	case score <= ModerateThreshold:
		return TierGreen
	case score <= HighThreshold:
		return TierYellow
	default:
		return TierRed
	}
}

// RelevanceTier is the colour of a search hit's relevance dot.
func RelevanceTier(score float64) Tier {
	switch {
	case score >= 0.8:
		return TierGreen
	case score >= 0.6:
		return TierYellow
	default:
		return TierOrange
	}
}

// Percent converts a fraction to a rounded percentage.
func Percent(score float64) int {
	return int(math.Round(score * 100))
}

// SeverityLevel returns the category of a bias instance's severity.
func SeverityLevel(severity float64) ScoreLevel {
	return LevelForScore(severity)
}

// Colour returns the hex colour used to chart a bias type.
func (b BiasType) Colour() string {
	switch b {
	case BiasGender:
		return "#EC4899"
	case BiasPolitical:
		return "#3B82F6"
	case BiasCultural:
		return "#F97316"
	case BiasConfirmation:
		return "#A855F7"
	case BiasSelection:
		return "#22C55E"
	case BiasAnchoring:
		return "#EAB308"
	default:
		return "#6B7280"
	}
}
