package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/strategy"
)

type strategyService struct {
	loader    *strategy.ContextLoader
	generator strategy.Generator
	executor  *strategy.Executor
	now       Clock
	recorder  Recorder
	observer  UseCaseObserver
}

func NewStrategyService(
	loader *strategy.ContextLoader,
	generator strategy.Generator,
	executor *strategy.Executor,
	recorder Recorder,
	clock Clock,
	observers ...UseCaseObserver,
) StrategyService {
	return &strategyService{
		loader:    loader,
		generator: generator,
		executor:  executor,
		now:       clockOrSystem(clock),
		recorder:  recorderOrNoop(recorder),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *strategyService) ListPlays(ctx context.Context, actor domain.Actor, dealID string) (resp *contract.PlaysResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"deal_id": dealID}
	defer observe(ctx, s.observer, "list-strategy-plays", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	dc, err := s.loader.Load(ctx, actor.WorkspaceID, dealID, s.now())
	if err != nil {
		return nil, err
	}
	plays, err := s.generator.Generate(ctx, dc)
	if err != nil {
		return nil, err
	}
	fields["plays"] = len(plays)
	return &contract.PlaysResponse{DealID: dealID, Plays: plays}, nil
}

func (s *strategyService) ExecutePlay(ctx context.Context, actor domain.Actor, playID, dealID string) contract.ExecutePlayResult {
	startedAt := time.Now()
	fields := map[string]any{"deal_id": dealID, "play_id": playID}
	var err error
	defer observe(ctx, s.observer, "execute-strategy-play", startedAt, fields, &err)

	result := contract.ExecutePlayResult{PlayID: playID, DealID: dealID}
	if err = actor.Validate(); err != nil {
		s.recorder.RecordPlayExecuted("error")
		return failedResult(result, err)
	}

	out, err := s.executor.Execute(ctx, strategy.ExecuteRequest{PlayID: playID, DealID: dealID, Actor: actor})
	if err != nil {
		result = failedResult(result, err)
		s.recorder.RecordPlayExecuted(string(result.ErrorKind))
		return result
	}

	result.Success = true
	result.TasksCreated = len(out.Tasks)
	result.ApprovalsCreated = out.ApprovalsCreated()
	fields["tasks_created"] = result.TasksCreated
	s.recorder.RecordPlayExecuted("success")
	return result
}

func failedResult(r contract.ExecutePlayResult, err error) contract.ExecutePlayResult {
	r.Success = false
	r.Error = err.Error()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		r.ErrorKind = contract.ExecuteErrNotFound
	case errors.Is(err, domain.ErrValidation):
		r.ErrorKind = contract.ExecuteErrInvalid
	case errors.Is(err, domain.ErrServiceUnavailable):
		r.ErrorKind = contract.ExecuteErrUnavailable
	default:
		r.ErrorKind = contract.ExecuteErrFailed
	}
	return r
}
