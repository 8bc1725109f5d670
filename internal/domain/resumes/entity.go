package resumes

import (
	"time"
)

// HistoryID identifier type
type HistoryID int64

// Aggregate Root: History is one persisted resume-analysis exchange.
// Records are immutable once saved; there is no update or delete.
type History struct {
	ID         HistoryID `json:"id"`
	UserEmail  string    `json:"userEmail,omitempty"`
	UserResume string    `json:"userResume"`
	AIResponse string    `json:"aiResponse"`
	CreatedAt  time.Time `json:"createdAt"`
}
