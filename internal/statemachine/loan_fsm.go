package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Loan lifecycle states of a single projection run
const (
	LoanStateAccumulating = "accumulating_loan"
	LoanStateRetired      = "loan_retired"
	LoanStateComplete     = "complete"
)

// Loan lifecycle events
const (
	EventRetire   = "retire"
	EventComplete = "complete"
)

// LoanFSM tracks whether the EMI outflow is still running for one run
type LoanFSM struct {
	fsm *fsm.FSM
}

// NewLoanFSM creates a loan state machine. A run with nothing borrowed
// starts retired.
func NewLoanFSM(outstanding bool) *LoanFSM {
	initial := LoanStateAccumulating
	if !outstanding {
		initial = LoanStateRetired
	}

	return &LoanFSM{
		fsm: fsm.NewFSM(
			initial,
			fsm.Events{
				// accumulating → retired (balance reached zero, one-way)
				{Name: EventRetire, Src: []string{LoanStateAccumulating}, Dst: LoanStateRetired},

				// accumulating/retired → complete (holding period elapsed)
				{Name: EventComplete, Src: []string{LoanStateAccumulating, LoanStateRetired}, Dst: LoanStateComplete},
			},
			fsm.Callbacks{},
		),
	}
}

// Retire moves the loan to the retired state
func (l *LoanFSM) Retire(ctx context.Context) error {
	if err := l.fsm.Event(ctx, EventRetire); err != nil {
		return fmt.Errorf("failed to retire loan in state %s: %w", l.fsm.Current(), err)
	}
	return nil
}

// Complete closes the run after the last holding year
func (l *LoanFSM) Complete(ctx context.Context) error {
	if err := l.fsm.Event(ctx, EventComplete); err != nil {
		return fmt.Errorf("failed to complete run in state %s: %w", l.fsm.Current(), err)
	}
	return nil
}

// EMIActive reports whether instalments are still being paid
func (l *LoanFSM) EMIActive() bool {
	return l.fsm.Current() == LoanStateAccumulating
}

// Current returns the current state
func (l *LoanFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LoanFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
