package domain

// StrategyPlay is a recommended multi-step sales action. Plays are derived
// on demand and never persisted; the ID is only stable for identical inputs.
type StrategyPlay struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Thesis         string   `json:"thesis"`
	Trigger        string   `json:"trigger"`
	Steps          []string `json:"steps"`
	ExpectedImpact string   `json:"expectedImpact"`
	Confidence     float64  `json:"confidence"`
}
