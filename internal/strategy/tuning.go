package strategy

import "github.com/alexanderramin/dealdesk/internal/scoring"

// Tuning holds the constants of the rule-based generator. DefaultTuning
// reproduces the production values; tests and experiments may override them.
type Tuning struct {
	MinConfidence float64
	MaxConfidence float64

	// DefaultSignalStrength is used when the account has no signals. It
	// defaults to scoring.DefaultSignalStrength.
	DefaultSignalStrength float64

	CommitmentDivisor float64
	RiskBase          float64
	RiskDivisor       float64
	SurfaceBase       float64
	SurfaceDivisor    float64
	ApprovalSprint    float64

	MaxPlays int
}

func DefaultTuning() Tuning {
	return Tuning{
		MinConfidence:         0.35,
		MaxConfidence:         0.95,
		DefaultSignalStrength: scoring.DefaultSignalStrength,
		CommitmentDivisor:     500,
		RiskBase:              0.72,
		RiskDivisor:           600,
		SurfaceBase:           0.68,
		SurfaceDivisor:        700,
		ApprovalSprint:        0.74,
		MaxPlays:              4,
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t Tuning) clamp(v float64) float64 {
	return Clamp(v, t.MinConfidence, t.MaxConfidence)
}
