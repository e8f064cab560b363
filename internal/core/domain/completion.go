package domain

import "sync/atomic"

// CompletionState is the lifecycle of a single assistant request.
// A request starts Pending and moves into exactly one terminal state.
type CompletionState int32

const (
	// CompletionPending means no terminal transition has happened yet.
	CompletionPending CompletionState = iota

	// CompletionCompleted means the generation call returned a result.
	CompletionCompleted

	// CompletionTimedOut means the request deadline fired first.
	CompletionTimedOut

	// CompletionCancelled means the caller cancelled the request.
	CompletionCancelled
)

// String returns the state name.
func (s CompletionState) String() string {
	switch s {
	case CompletionPending:
		return "pending"
	case CompletionCompleted:
		return "completed"
	case CompletionTimedOut:
		return "timed_out"
	case CompletionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal returns true for the three terminal states.
func (s CompletionState) Terminal() bool {
	return s == CompletionCompleted || s == CompletionTimedOut || s == CompletionCancelled
}

// Completion arbitrates the single completion path of one request.
// Multiple signals may race to finish a request (the generation call
// returning, the deadline firing, the caller cancelling); the first
// transition into a terminal state wins and every later attempt is a
// no-op. The winner is decided by one atomic compare-and-swap, so a
// request can never be completed twice.
type Completion struct {
	state atomic.Int32
}

// NewCompletion returns a Completion in the Pending state.
func NewCompletion() *Completion {
	return &Completion{}
}

// transition attempts Pending -> to. It returns true only for the
// single winning caller.
func (c *Completion) transition(to CompletionState) bool {
	if !to.Terminal() {
		return false
	}
	return c.state.CompareAndSwap(int32(CompletionPending), int32(to))
}

// Complete attempts the Completed transition.
func (c *Completion) Complete() bool { return c.transition(CompletionCompleted) }

// Timeout attempts the TimedOut transition.
func (c *Completion) Timeout() bool { return c.transition(CompletionTimedOut) }

// Cancel attempts the Cancelled transition.
func (c *Completion) Cancel() bool { return c.transition(CompletionCancelled) }

// State returns the current state.
func (c *Completion) State() CompletionState {
	return CompletionState(c.state.Load())
}
