package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
)

type approvalService struct {
	approvals repository.ApprovalRepo
	audit     repository.AuditRepo
	now       Clock
	observer  UseCaseObserver
}

func NewApprovalService(approvals repository.ApprovalRepo, audit repository.AuditRepo, clock Clock, observers ...UseCaseObserver) ApprovalService {
	return &approvalService{
		approvals: approvals,
		audit:     audit,
		now:       clockOrSystem(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *approvalService) ListPending(ctx context.Context, actor domain.Actor, limit int) (out []*domain.OutboundApproval, err error) {
	startedAt := time.Now()
	fields := map[string]any{"limit": limit}
	defer observe(ctx, s.observer, "list-pending-approvals", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	out, err = s.approvals.ListByStatus(ctx, actor.WorkspaceID, domain.ApprovalPending, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	fields["count"] = len(out)
	return out, nil
}

// Review approves or rejects a pending approval and records who did it.
func (s *approvalService) Review(ctx context.Context, req contract.ReviewApprovalRequest) (a *domain.OutboundApproval, err error) {
	startedAt := time.Now()
	fields := map[string]any{"approval_id": req.ApprovalID, "decision": string(req.Decision)}
	defer observe(ctx, s.observer, "review-approval", startedAt, fields, &err)

	if err = req.Actor.Validate(); err != nil {
		return nil, err
	}
	a, err = s.approvals.GetByID(ctx, req.Actor.WorkspaceID, req.ApprovalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err = a.Review(req.Decision, req.Reason, req.Actor.UserID, now); err != nil {
		return nil, err
	}
	if err = s.approvals.SaveReview(ctx, a); err != nil {
		return nil, err
	}

	meta := map[string]any{"decision": string(a.Status), "dealId": a.DealID}
	if a.RejectionReason != "" {
		meta["reason"] = a.RejectionReason
	}
	err = s.audit.Append(ctx, &domain.AuditEvent{
		WorkspaceID: req.Actor.WorkspaceID,
		ActorID:     req.Actor.UserID,
		Action:      domain.AuditApprovalReviewed,
		EntityType:  "approval",
		EntityID:    a.ID,
		Metadata:    meta,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
