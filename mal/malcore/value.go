package malcore

// ValueID is the cheap, totally ordered identifier of a proposed value,
// typically a hash of the value's contents.
//
// Stored as a string for use as a map key;
// the underlying bytes are opaque to the core.
type ValueID string

// Value is an application-supplied value to decide on.
//
// The core never inspects Data;
// it manipulates values only through their IDs.
type Value struct {
	ID ValueID

	Data []byte
}
