package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/notes"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/google/uuid"
)

type MeetingNotesDeps struct {
	Deals     repository.DealRepo
	Drafts    repository.FollowUpDraftRepo
	Approvals repository.ApprovalRepo
	Audit     repository.AuditRepo
	UoW       db.UnitOfWork
	Recorder  Recorder
	Clock     Clock
}

type meetingNotesService struct {
	deps     MeetingNotesDeps
	now      Clock
	recorder Recorder
	observer UseCaseObserver
}

func NewMeetingNotesService(deps MeetingNotesDeps, observers ...UseCaseObserver) MeetingNotesService {
	return &meetingNotesService{
		deps:     deps,
		now:      clockOrSystem(deps.Clock),
		recorder: recorderOrNoop(deps.Recorder),
		observer: useCaseObserverOrNoop(observers),
	}
}

func validateNotes(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < contract.MinNotesRunes || n > contract.MaxNotesRunes {
		return fmt.Errorf("%w: notes must be %d-%d characters, got %d",
			domain.ErrValidation, contract.MinNotesRunes, contract.MaxNotesRunes, n)
	}
	return nil
}

func (s *meetingNotesService) Process(ctx context.Context, req contract.ProcessNotesRequest) (resp *contract.ProcessNotesResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"deal_id": req.DealID}
	defer observe(ctx, s.observer, "process-meeting-notes", startedAt, fields, &err)

	if err = req.Actor.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.DealID) == "" {
		return nil, fmt.Errorf("%w: deal id is required", domain.ErrValidation)
	}
	if err = validateNotes(req.Notes); err != nil {
		return nil, err
	}

	ws := req.Actor.WorkspaceID
	deal, err := s.deps.Deals.GetByID(ctx, ws, req.DealID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	happenedAt := now
	if req.HappenedAt != nil {
		happenedAt = req.HappenedAt.UTC().Truncate(time.Second)
	}
	source := req.Source
	if source == "" {
		source = "manual"
	}

	analysis := notes.Analyze(req.Notes)

	activity := &domain.Activity{
		ID:          uuid.New().String(),
		WorkspaceID: ws,
		DealID:      deal.ID,
		Type:        domain.ActivityMeeting,
		HappenedAt:  happenedAt,
		Summary:     analysis.Summary,
		Source:      source,
		CreatedAt:   now,
	}

	tasks := make([]*domain.Task, 0, len(analysis.Templates))
	for _, tmpl := range analysis.Templates {
		tasks = append(tasks, &domain.Task{
			ID:          uuid.New().String(),
			WorkspaceID: ws,
			DealID:      deal.ID,
			Title:       tmpl.Title,
			Owner:       domain.OwnerRep,
			DueAt:       tmpl.DueAt(happenedAt),
			Priority:    tmpl.Priority,
			Status:      domain.TaskTodo,
			Channel:     tmpl.SuggestedChannel,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	followUp := notes.ComposeFollowUp(deal.Name, analysis)
	brief := &domain.MeetingBrief{
		ID:          uuid.New().String(),
		WorkspaceID: ws,
		DealID:      deal.ID,
		Summary:     analysis.Summary,
		PrimaryGoal: analysis.PrimaryGoal,
		Objections:  analysis.Objections,
		ProofPoints: analysis.ProofPoints,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	draft := &domain.FollowUpDraft{
		ID:          uuid.New().String(),
		WorkspaceID: ws,
		DealID:      deal.ID,
		Channel:     domain.ChannelEmail,
		Subject:     followUp.Subject,
		Body:        followUp.Body,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.deps.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteActivityRepo(tx).Create(ctx, activity); err != nil {
			return err
		}
		if err := repository.NewSQLiteTaskRepo(tx).CreateBatch(ctx, tasks); err != nil {
			return err
		}

		briefs := repository.NewSQLiteMeetingBriefRepo(tx)
		if err := briefs.Upsert(ctx, brief); err != nil {
			return err
		}
		stored, err := briefs.GetByDeal(ctx, ws, deal.ID)
		if err != nil {
			return err
		}
		brief = stored

		drafts := repository.NewSQLiteFollowUpDraftRepo(tx)
		if err := drafts.Upsert(ctx, draft); err != nil {
			return err
		}
		storedDraft, err := drafts.GetByDeal(ctx, ws, deal.ID)
		if err != nil {
			return err
		}
		draft = storedDraft
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("processing meeting notes: %w", err)
	}

	fields["tasks_created"] = len(tasks)
	fields["objections"] = len(analysis.Objections)
	s.recorder.RecordMeetingNotesProcessed()

	err = s.deps.Audit.Append(ctx, &domain.AuditEvent{
		WorkspaceID: ws,
		ActorID:     req.Actor.UserID,
		Action:      domain.AuditMeetingNotesProcessed,
		EntityType:  "deal",
		EntityID:    deal.ID,
		Metadata: map[string]any{
			"activityId":   activity.ID,
			"tasksCreated": len(tasks),
			"source":       source,
		},
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	return &contract.ProcessNotesResponse{
		Activity:       contract.NewActivityView(activity),
		GeneratedTasks: contract.NewTaskViews(tasks),
		MeetingBrief:   contract.NewMeetingBriefView(brief),
		FollowUpDraft:  contract.NewFollowUpDraftView(draft),
	}, nil
}

func (s *meetingNotesService) RequestFollowUpApproval(ctx context.Context, actor domain.Actor, dealID string) (approval *domain.OutboundApproval, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "request-follow-up-approval", startedAt, map[string]any{"deal_id": dealID}, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	draft, err := s.deps.Drafts.GetByDeal(ctx, actor.WorkspaceID, dealID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	approval = &domain.OutboundApproval{
		ID:          uuid.New().String(),
		WorkspaceID: actor.WorkspaceID,
		DealID:      dealID,
		Channel:     draft.Channel,
		Subject:     draft.Subject,
		Body:        draft.Body,
		Status:      domain.ApprovalPending,
		RequestedBy: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.deps.Approvals.Create(ctx, approval); err != nil {
		return nil, err
	}

	err = s.deps.Audit.Append(ctx, &domain.AuditEvent{
		WorkspaceID: actor.WorkspaceID,
		ActorID:     actor.UserID,
		Action:      domain.AuditApprovalRequested,
		EntityType:  "approval",
		EntityID:    approval.ID,
		Metadata:    map[string]any{"dealId": dealID, "draftId": draft.ID},
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	return approval, nil
}
