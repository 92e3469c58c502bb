package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/google/uuid"
)

// SeedResult identifies the demo rows written by Seed.
type SeedResult struct {
	AccountID string `json:"accountId"`
	DealID    string `json:"dealId"`
	Signals   int    `json:"signals"`
}

type seedSignal struct {
	typ     domain.SignalType
	score   int
	ageDays int
	summary string
}

var demoSignals = []seedSignal{
	{domain.SignalFunding, 88, 2, "Closed a Series C round to expand into EMEA"},
	{domain.SignalHiring, 74, 5, "Hiring a VP of Revenue Operations"},
	{domain.SignalTooling, 63, 9, "Evaluating a replacement for their legacy forecasting tool"},
	{domain.SignalEngagement, 52, 1, "Three stakeholders opened the pricing page this week"},
}

type seedService struct {
	uow      db.UnitOfWork
	now      Clock
	observer UseCaseObserver
}

func NewSeedService(uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) SeedService {
	return &seedService{uow: uow, now: clockOrSystem(clock), observer: useCaseObserverOrNoop(observers)}
}

func (s *seedService) Seed(ctx context.Context, actor domain.Actor) (res *SeedResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "seed-demo-data", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	ws := actor.WorkspaceID
	now := s.now()
	closeDate := now.AddDate(0, 0, 45)

	account := &domain.Account{
		ID:          uuid.New().String(),
		WorkspaceID: ws,
		Name:        "Northwind Logistics",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	deal := &domain.Deal{
		ID:          uuid.New().String(),
		WorkspaceID: ws,
		AccountID:   account.ID,
		Name:        "Northwind Platform Expansion",
		Stage:       domain.StageProposal,
		Amount:      120000,
		Confidence:  0.55,
		CloseDate:   &closeDate,
		RiskSummary: "Procurement has not engaged and legal review is unscheduled",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	activity := &domain.Activity{
		ID:          uuid.New().String(),
		WorkspaceID: ws,
		DealID:      deal.ID,
		Type:        domain.ActivityCall,
		HappenedAt:  now.AddDate(0, 0, -3),
		Summary:     "Discovery call with the champion; the CFO wants a business case",
		Source:      "seed",
		CreatedAt:   now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteAccountRepo(tx).Create(ctx, account); err != nil {
			return err
		}
		if err := repository.NewSQLiteDealRepo(tx).Create(ctx, deal); err != nil {
			return err
		}
		signals := repository.NewSQLiteSignalRepo(tx)
		for _, d := range demoSignals {
			err := signals.Create(ctx, &domain.Signal{
				ID:          uuid.New().String(),
				WorkspaceID: ws,
				AccountID:   account.ID,
				Type:        d.typ,
				Summary:     d.summary,
				HappenedAt:  now.AddDate(0, 0, -d.ageDays),
				Score:       d.score,
			})
			if err != nil {
				return err
			}
		}
		return repository.NewSQLiteActivityRepo(tx).Create(ctx, activity)
	})
	if err != nil {
		return nil, fmt.Errorf("seeding demo data: %w", err)
	}

	fields["deal_id"] = deal.ID
	return &SeedResult{AccountID: account.ID, DealID: deal.ID, Signals: len(demoSignals)}, nil
}
