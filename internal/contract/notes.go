package contract

import (
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

const (
	MinNotesRunes = 20
	MaxNotesRunes = 6000
)

type ProcessNotesRequest struct {
	DealID     string
	Notes      string
	HappenedAt *time.Time // nil uses the processing time
	Actor      domain.Actor
	Source     string
}

// NewProcessNotesRequest returns a request with the default source.
func NewProcessNotesRequest(actor domain.Actor, dealID, notes string) ProcessNotesRequest {
	return ProcessNotesRequest{
		DealID: dealID,
		Notes:  notes,
		Actor:  actor,
		Source: "manual",
	}
}

type ProcessNotesResponse struct {
	Activity       ActivityView      `json:"activity"`
	GeneratedTasks []TaskView        `json:"generatedTasks"`
	MeetingBrief   MeetingBriefView  `json:"meetingBrief"`
	FollowUpDraft  FollowUpDraftView `json:"followUpDraft"`
}

type ActivityView struct {
	ID         string    `json:"id"`
	DealID     string    `json:"dealId"`
	Type       string    `json:"type"`
	HappenedAt time.Time `json:"happenedAt"`
	Summary    string    `json:"summary"`
	Source     string    `json:"source"`
}

func NewActivityView(a *domain.Activity) ActivityView {
	return ActivityView{
		ID:         a.ID,
		DealID:     a.DealID,
		Type:       string(a.Type),
		HappenedAt: a.HappenedAt,
		Summary:    a.Summary,
		Source:     a.Source,
	}
}

type TaskView struct {
	ID          string     `json:"id"`
	DealID      string     `json:"dealId"`
	Title       string     `json:"title"`
	Owner       string     `json:"owner"`
	DueAt       time.Time  `json:"dueAt"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Channel     string     `json:"channel"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func NewTaskView(t *domain.Task) TaskView {
	return TaskView{
		ID:          t.ID,
		DealID:      t.DealID,
		Title:       t.Title,
		Owner:       string(t.Owner),
		DueAt:       t.DueAt,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Channel:     string(t.Channel),
		CompletedAt: t.CompletedAt,
	}
}

func NewTaskViews(tasks []*domain.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskView(t))
	}
	return out
}

type MeetingBriefView struct {
	ID          string   `json:"id"`
	DealID      string   `json:"dealId"`
	Summary     string   `json:"summary"`
	PrimaryGoal string   `json:"primaryGoal"`
	Objections  []string `json:"objections"`
	ProofPoints []string `json:"proofPoints"`
}

func NewMeetingBriefView(b *domain.MeetingBrief) MeetingBriefView {
	return MeetingBriefView{
		ID:          b.ID,
		DealID:      b.DealID,
		Summary:     b.Summary,
		PrimaryGoal: b.PrimaryGoal,
		Objections:  b.Objections,
		ProofPoints: b.ProofPoints,
	}
}

type FollowUpDraftView struct {
	ID      string `json:"id"`
	DealID  string `json:"dealId"`
	Channel string `json:"channel"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewFollowUpDraftView(d *domain.FollowUpDraft) FollowUpDraftView {
	return FollowUpDraftView{
		ID:      d.ID,
		DealID:  d.DealID,
		Channel: string(d.Channel),
		Subject: d.Subject,
		Body:    d.Body,
	}
}
