package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
)

type dealService struct {
	deals    repository.DealRepo
	observer UseCaseObserver
}

func NewDealService(deals repository.DealRepo, observers ...UseCaseObserver) DealService {
	return &dealService{deals: deals, observer: useCaseObserverOrNoop(observers)}
}

func (s *dealService) List(ctx context.Context, actor domain.Actor) (out []*domain.Deal, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "list-deals", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	out, err = s.deals.List(ctx, actor.WorkspaceID)
	if err != nil {
		return nil, err
	}
	fields["count"] = len(out)
	return out, nil
}

// Pipeline aggregates the workspace's open deals.
func (s *dealService) Pipeline(ctx context.Context, actor domain.Actor) (view contract.PipelineView, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "pipeline-summary", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return contract.PipelineView{}, err
	}
	deals, err := s.deals.List(ctx, actor.WorkspaceID)
	if err != nil {
		return contract.PipelineView{}, err
	}
	summary := domain.SummarizePipeline(deals)
	fields["open_deals"] = summary.OpenDeals
	return contract.NewPipelineView(summary), nil
}
