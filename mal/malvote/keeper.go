package malvote

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

type OutputKind uint8

const (
	_ OutputKind = iota // Invalid.

	OutputPolkaAny
	OutputPolkaNil
	OutputPolkaValue
	OutputPrecommitAny
	OutputPrecommitValue
	OutputSkipRound
)

func (k OutputKind) String() string {
	switch k {
	case OutputPolkaAny:
		return "polka-any"
	case OutputPolkaNil:
		return "polka-nil"
	case OutputPolkaValue:
		return "polka-value"
	case OutputPrecommitAny:
		return "precommit-any"
	case OutputPrecommitValue:
		return "precommit-value"
	case OutputSkipRound:
		return "skip-round"
	default:
		return fmt.Sprintf("OutputKind(%d)", uint8(k))
	}
}

// Output is a threshold event detected by the keeper.
//
// Outputs are comparable and serve as their own deduplication key:
// the keeper emits each distinct output at most once per height.
type Output struct {
	Kind  OutputKind
	Round malcore.Round

	// Set for OutputPolkaValue and OutputPrecommitValue.
	Value malcore.ValueID
}

func PolkaAnyOutput(r malcore.Round) Output {
	return Output{Kind: OutputPolkaAny, Round: r}
}

func PolkaNilOutput(r malcore.Round) Output {
	return Output{Kind: OutputPolkaNil, Round: r}
}

func PolkaValueOutput(r malcore.Round, v malcore.ValueID) Output {
	return Output{Kind: OutputPolkaValue, Round: r, Value: v}
}

func PrecommitAnyOutput(r malcore.Round) Output {
	return Output{Kind: OutputPrecommitAny, Round: r}
}

func PrecommitValueOutput(r malcore.Round, v malcore.ValueID) Output {
	return Output{Kind: OutputPrecommitValue, Round: r, Value: v}
}

func SkipRoundOutput(r malcore.Round) Output {
	return Output{Kind: OutputSkipRound, Round: r}
}

// roundTally is the keeper's per-round state, created lazily.
type roundTally struct {
	votes RoundVotes

	// Distinct voters seen in the round, for skip detection.
	weights RoundWeights
}

// Keeper tallies all votes for one height and detects threshold events.
//
// Keeper is a plain data structure:
// all methods are synchronous and must not be called concurrently.
type Keeper struct {
	totalWeight uint64
	params      malcore.ThresholdParams

	perRound map[malcore.Round]*roundTally

	emitted map[Output]struct{}

	evidence EvidenceMap
}

func NewKeeper(totalWeight uint64, params malcore.ThresholdParams) *Keeper {
	return &Keeper{
		totalWeight: totalWeight,
		params:      params,
		perRound:    make(map[malcore.Round]*roundTally),
		emitted:     make(map[Output]struct{}),
		evidence:    NewEvidenceMap(),
	}
}

func (k *Keeper) TotalWeight() uint64 {
	return k.totalWeight
}

// Evidence returns the equivocation evidence recorded so far.
func (k *Keeper) Evidence() EvidenceMap {
	return k.evidence
}

// ApplyVote applies one vote with the given validator weight
// and returns the threshold event it triggers, if any.
//
// Thresholds for the vote's round are evaluated in fixed priority order
// (polka value, polka nil, polka any, precommit value, precommit any),
// and at most one not-yet-emitted event is returned per call.
// A vote that adds no weight (a duplicate delivery or a conflicting vote)
// returns nil.
// If no threshold event fires and the vote belongs to a round
// above currentRound whose distinct-voter weight meets the honest
// threshold, a skip-round event is returned instead.
func (k *Keeper) ApplyVote(
	sv malcore.SignedVote,
	weight uint64,
	currentRound malcore.Round,
) *Output {
	tally := k.tally(sv.Vote.Round)

	tally.weights.SetOnce(sv.Vote.Validator, weight)

	before := tally.votes.Sum(sv.Vote.Type)
	if _, conflict := tally.votes.AddVote(sv, weight); conflict != nil {
		k.evidence.Add(conflict.Existing, conflict.Conflicting)
	}

	// A duplicate or conflicting vote adds no weight and triggers no event.
	if tally.votes.Sum(sv.Vote.Type) == before {
		return nil
	}

	if out := k.emitNewThreshold(sv.Vote.Round, sv.Vote.Type); out != nil {
		return out
	}

	if sv.Vote.Round > currentRound &&
		k.params.Honest.IsMet(tally.weights.Sum(), k.totalWeight) {
		return k.emit(SkipRoundOutput(sv.Vote.Round))
	}

	return nil
}

// IsThresholdMet reports whether the threshold currently holds
// for the given round and vote type.
// Unlike ApplyVote it has no emit-once semantics;
// it is a pure query used by the driver's multiplexer.
func (k *Keeper) IsThresholdMet(
	r malcore.Round,
	voteType malcore.VoteType,
	threshold malcore.Threshold,
) bool {
	tally, ok := k.perRound[r]
	if !ok {
		return false
	}
	return tally.votes.IsThresholdMet(voteType, threshold, k.params.Quorum, k.totalWeight)
}

// QuorumValue returns the defined value with quorum weight
// for the given round and vote type, if one exists.
func (k *Keeper) QuorumValue(
	r malcore.Round,
	voteType malcore.VoteType,
) (malcore.ValueID, bool) {
	tally, ok := k.perRound[r]
	if !ok {
		return "", false
	}

	target, ok := tally.votes.QuorumTarget(voteType, k.params.Quorum, k.totalWeight)
	if !ok {
		return "", false
	}
	return target.Value()
}

func (k *Keeper) tally(r malcore.Round) *roundTally {
	t, ok := k.perRound[r]
	if !ok {
		t = &roundTally{
			votes:   NewRoundVotes(),
			weights: NewRoundWeights(),
		}
		k.perRound[r] = t
	}
	return t
}

// emitNewThreshold returns the highest-priority threshold event
// for round r that holds and has not been emitted yet.
//
// Only thresholds over the given vote type are considered:
// a precommit can never newly satisfy a prevote threshold,
// and evaluating across types would let a long-suppressed
// lower-priority event of the other type preempt the one
// the applied vote just completed.
func (k *Keeper) emitNewThreshold(r malcore.Round, voteType malcore.VoteType) *Output {
	tally := k.perRound[r]

	var candidates []Output

	if target, ok := tally.votes.QuorumTarget(voteType, k.params.Quorum, k.totalWeight); ok {
		if v, defined := target.Value(); defined {
			if voteType == malcore.VoteTypePrevote {
				candidates = append(candidates, PolkaValueOutput(r, v))
			} else {
				candidates = append(candidates, PrecommitValueOutput(r, v))
			}
		} else if voteType == malcore.VoteTypePrevote {
			candidates = append(candidates, PolkaNilOutput(r))
		}
	}

	if k.params.Quorum.IsMet(tally.votes.Sum(voteType), k.totalWeight) {
		if voteType == malcore.VoteTypePrevote {
			candidates = append(candidates, PolkaAnyOutput(r))
		} else {
			candidates = append(candidates, PrecommitAnyOutput(r))
		}
	}

	for _, c := range candidates {
		if out := k.emit(c); out != nil {
			return out
		}
	}
	return nil
}

// emit records out as emitted and returns it,
// or returns nil if it was already emitted.
func (k *Keeper) emit(out Output) *Output {
	if _, ok := k.emitted[out]; ok {
		return nil
	}
	k.emitted[out] = struct{}{}
	return &out
}
