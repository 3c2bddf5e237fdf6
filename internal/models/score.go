package models

import "fmt"

// ScoreDirection states which way a backend's relevance scores point.
// Cosine or BM25 style scores are higher-is-better; raw vector distances
// are lower-is-better. Retrieval thresholds are meaningless without this,
// so the direction is always explicit and never assumed.
type ScoreDirection int

const (
	ScoreDirectionUnset ScoreDirection = iota
	HigherIsBetter
	LowerIsBetter
)

func (d ScoreDirection) String() string {
	switch d {
	case HigherIsBetter:
		return "higher_is_better"
	case LowerIsBetter:
		return "lower_is_better"
	default:
		return "unset"
	}
}

// ParseScoreDirection converts the configuration strings "higher_is_better"
// and "lower_is_better" into a ScoreDirection.
func ParseScoreDirection(s string) (ScoreDirection, error) {
	switch s {
	case "higher_is_better":
		return HigherIsBetter, nil
	case "lower_is_better":
		return LowerIsBetter, nil
	default:
		return ScoreDirectionUnset, fmt.Errorf("unknown score direction %q", s)
	}
}
