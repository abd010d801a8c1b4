package types

import (
	"time"

	"github.com/google/uuid"
)

// Priority orders how soon a business should act on a recommendation.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank maps a priority to a numeric level, low=1 through urgent=4. Unknown
// values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 2
	}
}

// Escalate bumps a priority one level up, capped at urgent. Used when an
// event is imminent and the base priority would understate the time pressure.
func (p Priority) Escalate() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityUrgent
	}
}

// Recommendation categories group actions by the part of the operation they
// touch.
const (
	CategoryInventory    = "inventory"
	CategoryStaffing     = "staffing"
	CategoryMarketing    = "marketing"
	CategoryEvents       = "events"
	CategoryPartnerships = "partnerships"
	CategoryOperations   = "operations"
)

// Recommendation is one concrete suggested action for one business, derived
// from one article. Impact, Effort and Confidence are all in [0, 1]; Effort
// additionally carries a rough hour estimate for display.
type Recommendation struct {
	ID          uuid.UUID `json:"id"`
	ArticleID   uuid.UUID `json:"article_id"`
	BusinessID  uuid.UUID `json:"business_id"`
	TemplateKey string    `json:"template_key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ActionType  string    `json:"action_type"`
	Category    string    `json:"category"`
	Priority    Priority  `json:"priority"`
	Impact      float64   `json:"impact"`
	Effort      float64   `json:"effort"`
	EffortHours int       `json:"effort_hours"`
	Confidence  float64   `json:"confidence"`
	Reasoning   string    `json:"reasoning"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FinalScore combines confidence, impact, effort and priority into the single
// value used to order recommendations for display. Higher is better; low
// effort raises the score.
func (r *Recommendation) FinalScore() float64 {
	return r.Confidence*0.4 + r.Impact*0.3 + (1.0-r.Effort)*0.2 + float64(r.Priority.Rank())/4.0*0.1
}
