// Package malround implements the per-round Tendermint state machine
// as a pure transition function.
//
// [Apply] maps a (state, input) pair to a [Transition]:
// the next state and at most one output.
// It performs no I/O, reads no clock, and keeps no hidden state,
// so replaying the same inputs always reproduces the same outputs.
// Pairs outside the transition table yield an invalid transition
// that the caller drops; the state machine is total
// and adversarial input cannot wedge it.
//
// The package deliberately knows nothing about vote tallying,
// signatures, or other validators' state.
// The driver in the maldriver package observes those
// and condenses them into the inputs defined here.
package malround
