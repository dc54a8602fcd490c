// Package maldriver wires the consensus core together for one validator.
//
// The [Driver] owns the round state machine, the vote keeper,
// and the proposal keeper for the current height.
// Each call to [Driver.Process] applies one external input --
// a round start, a proposal, a vote, a certificate, or an elapsed
// timeout -- runs every induced state machine transition to completion,
// and returns the resulting outputs in order.
//
// The multiplexer in mux.go is the subtle part:
// information arrives in any order
// (votes before their proposal, proposals before their round),
// and each new fact is combined with everything already known
// to produce the richest state machine input currently justified.
//
// The driver performs no I/O.
// Broadcasting, timers, value building, and persistence
// are the caller's side of the contract;
// replaying the same inputs into a fresh driver
// reproduces the same outputs byte for byte.
package maldriver
