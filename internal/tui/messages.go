package tui

import "github.com/Veraticus/family-budget/internal/engine"

// Every backend response reaches the model as one of these messages and is
// applied inside Update, on the program's goroutine.

type referenceLoadedMsg struct {
	data *engine.ReferenceData
}

type transactionsLoadedMsg struct {
	result engine.TransactionsResult
}

type plannedLoadedMsg struct {
	result engine.PlannedResult
}

type plannedCompletedMsg struct {
	result engine.CompletionResult
}

type reportLoadedMsg struct {
	result engine.ReportResult
}

// View represents the current screen.
type View int

const (
	ViewTransactions View = iota
	ViewPlanned
)

func (v View) String() string {
	switch v {
	case ViewPlanned:
		return "Planned"
	default:
		return "Transactions"
	}
}
