// Package progress reports the state of long-running dataset
// operations and carries cancellation back the other way.
//
// The Reporter interface is small: workers call Update about every
// hundred records and poll Cancelled at the same points,
// so a cancel takes effect at the next checkpoint rather than
// immediately. Console renders a throttled bar with ETA to stderr,
// keeping stdout free for the wire protocol; Nop and Func cover silent
// and callback-only callers.
//
// Reporters are handed in explicitly by whoever starts the operation.
// There is no registry and no ambient current-operation state.
package progress
