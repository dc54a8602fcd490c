package malround

// Transition is the result of applying one input to the state machine.
type Transition struct {
	// The state after the input.
	NextState State

	// The output to emit, if any.
	Output *Output

	// Whether the (state, input) pair was listed in the transition table.
	// Unlisted pairs yield an invalid transition with the state unchanged;
	// the caller drops them.
	Valid bool
}

// To returns a valid transition to the given state with no output.
func To(next State) Transition {
	return Transition{NextState: next, Valid: true}
}

// Invalid returns an invalid transition keeping the given state.
func Invalid(state State) Transition {
	return Transition{NextState: state}
}

// WithOutput sets the transition's output.
func (t Transition) WithOutput(out Output) Transition {
	t.Output = &out
	return t
}
