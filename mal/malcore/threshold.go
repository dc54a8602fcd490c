package malcore

import "fmt"

// ThresholdParam is a ratio of the total voting power.
// A weight w meets the param against total power t iff w/t > Num/Den,
// evaluated without division as w*Den > Num*t.
type ThresholdParam struct {
	Num uint64
	Den uint64
}

// IsMet reports whether the given weight strictly exceeds
// the param's fraction of the total voting power.
func (p ThresholdParam) IsMet(weight, total uint64) bool {
	return weight*p.Den > p.Num*total
}

// ThresholdParams bundles the two ratios driving Tendermint:
// the quorum threshold (safety) and the honest threshold (round skipping).
type ThresholdParams struct {
	// More than two thirds of the total voting power.
	Quorum ThresholdParam

	// More than one third: at least one honest validator.
	Honest ThresholdParam
}

// DefaultThresholdParams returns the canonical Tendermint thresholds.
func DefaultThresholdParams() ThresholdParams {
	return ThresholdParams{
		Quorum: ThresholdParam{Num: 2, Den: 3},
		Honest: ThresholdParam{Num: 1, Den: 3},
	}
}

type ThresholdKind uint8

const (
	// No threshold reached yet.
	ThresholdKindUnreached ThresholdKind = iota

	// Quorum of votes over all targets combined.
	ThresholdKindAny

	// Quorum of votes for nil.
	ThresholdKindNil

	// Quorum of votes for a specific value.
	ThresholdKindValue
)

// Threshold describes a quorum condition over one vote type in one round.
type Threshold struct {
	Kind ThresholdKind

	// Set only when Kind is ThresholdKindValue.
	Value ValueID
}

func ThresholdUnreached() Threshold {
	return Threshold{Kind: ThresholdKindUnreached}
}

func ThresholdAny() Threshold {
	return Threshold{Kind: ThresholdKindAny}
}

func ThresholdNil() Threshold {
	return Threshold{Kind: ThresholdKindNil}
}

func ThresholdValue(v ValueID) Threshold {
	return Threshold{Kind: ThresholdKindValue, Value: v}
}

func (t Threshold) String() string {
	switch t.Kind {
	case ThresholdKindUnreached:
		return "threshold(unreached)"
	case ThresholdKindAny:
		return "threshold(any)"
	case ThresholdKindNil:
		return "threshold(nil)"
	case ThresholdKindValue:
		return fmt.Sprintf("threshold(value %x)", string(t.Value))
	default:
		return fmt.Sprintf("Threshold(%d)", uint8(t.Kind))
	}
}
