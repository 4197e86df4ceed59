package domain

import (
	"strings"
	"time"
)

// StageID is the canonical pipeline stage of a deal. The set is closed:
// every deal held locally carries exactly one of these seven values.
type StageID string

const (
	StageNew              StageID = "new"
	StageQualifying       StageID = "qualifying"
	StageRequirements     StageID = "requirements"
	StageValueProposition StageID = "value_proposition"
	StageNegotiation      StageID = "negotiation"
	StageReadyToClose     StageID = "ready_to_close"
	StageClosedWon        StageID = "closed_won"
)

// Stages returns all stages in pipeline order
func Stages() []StageID {
	return []StageID{
		StageNew,
		StageQualifying,
		StageRequirements,
		StageValueProposition,
		StageNegotiation,
		StageReadyToClose,
		StageClosedWon,
	}
}

// stageAliases maps external stage strings (varied casing and synonyms) to
// canonical StageIDs. Lookup keys are lowercased with spaces and hyphens
// folded to underscores.
var stageAliases = map[string]StageID{
	"new":               StageNew,
	"lead":              StageNew,
	"incoming":          StageNew,
	"qualifying":        StageQualifying,
	"qualification":     StageQualifying,
	"qualified":         StageQualifying,
	"requirements":      StageRequirements,
	"discovery":         StageRequirements,
	"value_proposition": StageValueProposition,
	"proposal":          StageValueProposition,
	"quote":             StageValueProposition,
	"negotiation":       StageNegotiation,
	"negotiating":       StageNegotiation,
	"ready_to_close":    StageReadyToClose,
	"closing":           StageReadyToClose,
	"verbal":            StageReadyToClose,
	"closed_won":        StageClosedWon,
	"won":               StageClosedWon,
	"win":               StageClosedWon,
}

// NormalizeStage maps an arbitrary external stage string to a canonical
// StageID. The mapping is total: unrecognized input degrades to StageNew
// so a deal always renders, just in the default bucket.
func NormalizeStage(raw string) StageID {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if s, ok := stageAliases[key]; ok {
		return s
	}
	return StageNew
}

// Label returns the human display label for a stage. Total over the closed
// stage domain; no fallback needed.
func (s StageID) Label() string {
	switch s {
	case StageNew:
		return "New"
	case StageQualifying:
		return "Qualifying"
	case StageRequirements:
		return "Requirements"
	case StageValueProposition:
		return "Value Proposition"
	case StageNegotiation:
		return "Negotiation"
	case StageReadyToClose:
		return "Ready to Close"
	case StageClosedWon:
		return "Closed Won"
	default:
		return string(s)
	}
}

// String returns the wire string
func (s StageID) String() string {
	return string(s)
}

// Deal represents a CRM pipeline deal
type Deal struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Value             float64    `json:"value"`
	Currency          string     `json:"currency"`
	Stage             StageID    `json:"stage"`
	OrganizationID    string     `json:"organization_id,omitempty"`
	Assignee          *User      `json:"assignee,omitempty"`
	Probability       int        `json:"probability"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// WeightedValue returns the deal value scaled by close probability
func (d Deal) WeightedValue() float64 {
	return d.Value * float64(d.Probability) / 100
}
