// Package persistence validates and applies RB/MB/EB content to the Store,
// enforcing the stake/reservation/token invariants.
package persistence

import "errors"

// Code is the textual result of a validation attempt, returned to the
// submitting client and reused verbatim as consensus Rejection reasons
// where applicable.
type Code string

const (
	CodeProgress           Code = "progress"
	CodeInsufficientFee    Code = "insufficient_fee"
	CodeBadSignature       Code = "bad_signature"
	CodeFork               Code = "fork"
	CodeGapPrevious        Code = "gap_previous"
	CodeOld                Code = "old"
	CodeAlreadyReserved    Code = "already_reserved"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeInvalidCandidate   Code = "invalid_candidate"
	CodeDeadPeriodVote     Code = "dead_period_vote"
	CodeNotARep            Code = "not_a_rep"
	CodePendingRep         Code = "pending_rep"
	CodeOldRep             Code = "old_rep"
	CodeAlreadyVoted       Code = "already_voted"
	CodeOpenedBurnAccount  Code = "opened_burn_account"
	CodeUnknownSourceAcct  Code = "unknown_source_account"
	CodeBufferingDone      Code = "buffering_done"
	CodeInitializing       Code = "initializing"
	CodeRevertImmutability Code = "revert_immutability"
	CodeImmutable          Code = "immutable"
	CodeRedundant          Code = "redundant"
)

// Result is the outcome of a Validate call: a code plus, for successful
// sends, the accepted request's hash.
type Result struct {
	Code Code
	Hash [32]byte
}

// ErrFatal is returned by ApplyUpdates when a store write inside the
// transaction could not be guaranteed durable. The top-level executor is
// expected to translate this into process termination; it must never be
// swallowed or retried.
var ErrFatal = errors.New("persistence: fatal error applying block, halting")
