package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
)

// PlannedResult is a planned-operations listing.
type PlannedResult struct {
	Err        error
	Operations *service.PlannedOperations
}

// FetchPlanned lists pending and completed planned operations.
func (e *Engine) FetchPlanned(ctx context.Context) PlannedResult {
	if err := e.requireUser(); err != nil {
		return PlannedResult{Err: err}
	}
	ops, err := e.svc.ListPlannedOperations(ctx, e.userID)
	return PlannedResult{Operations: ops, Err: err}
}

// ApplyPlanned applies a planned-operations listing.
func (e *Engine) ApplyPlanned(res PlannedResult) {
	if res.Err == nil && res.Operations != nil {
		e.view.ApplyPlannedOperations(res.Operations.Pending, res.Operations.Completed)
	}
	e.view.SetStatus(viewsync.SectionPlanned, res.Err)
}

// LoadPlanned reloads both planned-operation lists.
func (e *Engine) LoadPlanned(ctx context.Context) error {
	res := e.FetchPlanned(ctx)
	e.ApplyPlanned(res)
	return res.Err
}

// CreatePlanned creates a planned operation and files it in the view.
func (e *Engine) CreatePlanned(ctx context.Context, in service.PlannedOperationInput) (*model.PlannedOperation, error) {
	if err := e.requireUser(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		e.view.SetStatus(viewsync.SectionPlanned, err)
		return nil, err
	}

	op, err := e.svc.CreatePlannedOperation(ctx, e.userID, in)
	if err != nil {
		e.view.SetStatus(viewsync.SectionPlanned, err)
		return nil, fmt.Errorf("create planned operation: %w", err)
	}

	e.view.UpsertPlannedOperation(*op)
	e.view.SetStatus(viewsync.SectionPlanned, nil)
	return op, nil
}

// CompletionResult is the answer to a complete request.
type CompletionResult struct {
	Err         error
	Operation   *model.PlannedOperation
	OperationID string
}

// FetchCompletion asks the backend to complete a planned operation.
func (e *Engine) FetchCompletion(ctx context.Context, operationID string) CompletionResult {
	res := CompletionResult{OperationID: operationID}
	if err := e.requireUser(); err != nil {
		res.Err = err
		return res
	}
	res.Operation, res.Err = e.svc.CompletePlannedOperation(ctx, e.userID, operationID)
	return res
}

// ApplyCompletion moves the completed operation between lists.
func (e *Engine) ApplyCompletion(res CompletionResult) {
	if res.Err == nil && res.Operation != nil {
		e.view.CompletePlannedOperation(*res.Operation)
	}
	e.view.SetStatus(viewsync.SectionPlanned, res.Err)
}

// CompletePlanned completes a planned operation and applies the result.
func (e *Engine) CompletePlanned(ctx context.Context, operationID string) (*model.PlannedOperation, error) {
	res := e.FetchCompletion(ctx, operationID)
	e.ApplyCompletion(res)
	if res.Err != nil {
		return nil, fmt.Errorf("complete planned operation %s: %w", operationID, res.Err)
	}
	return res.Operation, nil
}

// ReportResult is a report overview tagged with its request generation.
type ReportResult struct {
	Err        error
	Report     *model.ReportOverview
	Generation uint64
}

// FetchReport loads the overview report for period.
func (e *Engine) FetchReport(ctx context.Context, period model.Period, generation uint64) ReportResult {
	res := ReportResult{Generation: generation}
	if err := e.requireUser(); err != nil {
		res.Err = err
		return res
	}
	if err := period.Validate(); err != nil {
		res.Err = common.NewValidationError("period", err.Error())
		return res
	}
	res.Report, res.Err = e.svc.ReportOverview(ctx, e.userID, period)
	return res
}

// ApplyReport applies a report if its generation is still current.
func (e *Engine) ApplyReport(res ReportResult) bool {
	if !e.view.IsCurrent(res.Generation) {
		return false
	}
	if res.Err == nil && res.Report != nil {
		e.view.ApplyReport(*res.Report)
	}
	e.view.SetStatus(viewsync.SectionReport, res.Err)
	return true
}

// LoadReport loads the report for period, or for the active filter period
// when period is zero.
func (e *Engine) LoadReport(ctx context.Context, period model.Period) error {
	if period.IsZero() {
		period = e.view.Filters().Period
	}
	res := e.FetchReport(ctx, period, e.view.Generation())
	e.ApplyReport(res)
	return res.Err
}
