package Models

import "time"

// Mood is the overall condition noted on a handover report.
type Mood string

const (
	MoodExcellent  Mood = "excellent"
	MoodGood       Mood = "good"
	MoodStable     Mood = "stable"
	MoodConcerning Mood = "concerning"
)

func (m Mood) IsValid() bool {
	switch m {
	case MoodExcellent, MoodGood, MoodStable, MoodConcerning:
		return true
	default:
		return false
	}
}

// FeedbackState is the client feedback / agency reply sub-state of a report.
// It is derived from the report fields and never stored.
type FeedbackState string

const (
	FeedbackNone         FeedbackState = "no_feedback"
	FeedbackPendingReply FeedbackState = "pending_reply"
	FeedbackReplied      FeedbackState = "replied"
	FeedbackAcknowledged FeedbackState = "acknowledged"
)

// DailyReport is the narrative handover note for one shift.
type DailyReport struct {
	ID               string     `json:"id"`
	StaffID          string     `json:"staff_id"`
	ClientID         string     `json:"client_id"`
	Date             string     `json:"date"`
	Content          string     `json:"content"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	IsFinalized      bool       `json:"is_finalized"`
	Mood             Mood       `json:"mood,omitempty"`
	ClientFeedback   string     `json:"client_feedback,omitempty"`
	ClientFeedbackAt *time.Time `json:"client_feedback_at,omitempty"`
	AdminReply       string     `json:"admin_reply,omitempty"`
	AdminReplyAt     *time.Time `json:"admin_reply_at,omitempty"`
	AdminFlagged     bool       `json:"admin_flagged"`
	Version          int64      `json:"version"`
}

// Key returns the (staff, client, date) tuple that identifies the canonical report.
func (r DailyReport) Key() ReportKey {
	return ReportKey{StaffID: r.StaffID, ClientID: r.ClientID, Date: r.Date}
}

func (r DailyReport) FeedbackState() FeedbackState {
	switch {
	case r.AdminFlagged:
		return FeedbackPendingReply
	case r.AdminReply != "":
		return FeedbackReplied
	case r.ClientFeedback != "":
		return FeedbackAcknowledged
	default:
		return FeedbackNone
	}
}

// ReportKey identifies one shift: a staff member, a client and a day.
type ReportKey struct {
	StaffID  string `json:"staff_id"`
	ClientID string `json:"client_id"`
	Date     string `json:"date"`
}
