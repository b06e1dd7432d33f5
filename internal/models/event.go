package models

// ImpactLevel is the expected market effect of an economic event.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "HIGH"
	ImpactMedium ImpactLevel = "MEDIUM"
	ImpactLow    ImpactLevel = "LOW"
)

// Label returns the short display label for the impact level.
// Unknown levels are returned unchanged.
func (l ImpactLevel) Label() string {
	switch l {
	case ImpactHigh:
		return "高"
	case ImpactMedium:
		return "中"
	case ImpactLow:
		return "低"
	}
	return string(l)
}

// EconomicEvent is a scheduled release, print or earnings date.
type EconomicEvent struct {
	Date         string      `json:"date"`
	Time         string      `json:"time"`
	Event        string      `json:"event"`
	Impact       ImpactLevel `json:"impact"`
	Forecast     string      `json:"forecast,omitempty"`
	Previous     string      `json:"previous,omitempty"`
	RelatedAsset string      `json:"relatedAsset,omitempty"`
}
