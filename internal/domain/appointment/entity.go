package appointment

import (
	"strings"

	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

// ===============================
// Partial update
// ===============================

type Patch struct {
	Status             *string `json:"status,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	Beverage           *string `json:"beverage,omitempty"`
	ConversationTopics *string `json:"conversation_topics,omitempty"`
	VideoURL           *string `json:"video_url,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Status == nil && p.Notes == nil && p.Beverage == nil &&
		p.ConversationTopics == nil && p.VideoURL == nil
}

// CheckAgainst validates the patch for the current row.
func (p Patch) CheckAgainst(ap *models.Appointment) error {
	if p.Status == nil {
		return nil
	}
	return CanTransition(Status(ap.Status), Status(strings.ToLower(*p.Status)))
}

// Fields is the column map handed to the gateway update.
func (p Patch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Status != nil {
		fields["status"] = strings.ToLower(*p.Status)
	}
	if p.Notes != nil {
		fields["notes"] = *p.Notes
	}
	if p.Beverage != nil {
		fields["beverage"] = *p.Beverage
	}
	if p.ConversationTopics != nil {
		fields["conversation_topics"] = *p.ConversationTopics
	}
	if p.VideoURL != nil {
		fields["video_url"] = *p.VideoURL
	}
	return fields
}

func (p Patch) Apply(ap *models.Appointment) {
	if p.Status != nil {
		ap.Status = strings.ToLower(*p.Status)
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	if p.Beverage != nil {
		ap.Beverage = *p.Beverage
	}
	if p.ConversationTopics != nil {
		ap.ConversationTopics = *p.ConversationTopics
	}
	if p.VideoURL != nil {
		ap.VideoURL = *p.VideoURL
	}
}
