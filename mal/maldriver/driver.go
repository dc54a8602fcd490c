package maldriver

import (
	"fmt"
	"log/slog"

	"github.com/malachite-engine/malachite/mal/malcore"
	"github.com/malachite-engine/malachite/mal/malround"
	"github.com/malachite-engine/malachite/mal/malvote"
)

// Driver orchestrates the consensus core for one validator:
// it feeds received proposals and votes into the proposal keeper
// and the vote keeper, translates the resulting events into
// round state machine inputs, and lifts the state machine's outputs
// into effects for the caller to perform.
//
// Driver is single-threaded:
// Process runs to completion and must not be called concurrently.
// All I/O -- gossip, timers, value building, persistence --
// belongs to the caller.
type Driver struct {
	log *slog.Logger

	signing malcore.SigningProvider

	address malcore.Address
	valSet  malcore.ValidatorSet
	params  malcore.ThresholdParams

	height malcore.Height

	// Proposer for the current round, from the last NewRound input.
	proposer malcore.Address

	roundState     malround.State
	voteKeeper     *malvote.Keeper
	proposalKeeper *ProposalKeeper

	// Round inputs induced by the input being processed,
	// drained in order before Process returns.
	pending []malround.Input

	// Timeouts already emitted, to keep re-derived threshold events
	// from arming the same logical timer twice.
	scheduled map[malcore.Timeout]struct{}
}

type Option func(*Driver)

// WithThresholdParams overrides the canonical Tendermint thresholds.
func WithThresholdParams(params malcore.ThresholdParams) Option {
	return func(d *Driver) {
		d.params = params
	}
}

func NewDriver(
	log *slog.Logger,
	signing malcore.SigningProvider,
	address malcore.Address,
	height malcore.Height,
	valSet malcore.ValidatorSet,
	opts ...Option,
) *Driver {
	d := &Driver{
		log:     log,
		signing: signing,
		address: address,
		params:  malcore.DefaultThresholdParams(),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.resetHeight(height, valSet)
	return d
}

func (d *Driver) Height() malcore.Height {
	return d.height
}

func (d *Driver) Round() malcore.Round {
	return d.roundState.Round
}

// RoundState returns a copy of the current round state machine state.
func (d *Driver) RoundState() malround.State {
	return d.roundState
}

// Evidence returns the equivocation evidence recorded at this height.
func (d *Driver) Evidence() malvote.EvidenceMap {
	return d.voteKeeper.Evidence()
}

// MoveToHeight discards all state for the current height
// and prepares the driver for the given one.
// The caller starts the new height with a NewRound input.
func (d *Driver) MoveToHeight(h malcore.Height, valSet malcore.ValidatorSet) {
	d.resetHeight(h, valSet)
}

func (d *Driver) resetHeight(h malcore.Height, valSet malcore.ValidatorSet) {
	d.height = h
	d.valSet = valSet
	d.proposer = ""
	d.roundState = malround.NewState(h)
	d.voteKeeper = malvote.NewKeeper(valSet.TotalPower(), d.params)
	d.proposalKeeper = NewProposalKeeper(h)
	d.pending = nil
	d.scheduled = make(map[malcore.Timeout]struct{})
}

// Process applies one external input and returns the outputs it caused,
// in order.
// A rejected input returns an error and leaves the driver unchanged.
// Process never panics on adversarial input.
func (d *Driver) Process(in Input) ([]Output, error) {
	if err := d.applyInput(in); err != nil {
		return nil, err
	}
	return d.drainPending(), nil
}

func (d *Driver) applyInput(in Input) error {
	switch in.Kind {
	case InputNewRound:
		return d.applyNewRound(in)

	case InputProposeValue:
		if in.Round != d.roundState.Round {
			d.log.Debug(
				"Dropping proposed value for a different round",
				"value_round", in.Round, "round", d.roundState.Round,
			)
			return nil
		}
		d.enqueue(malround.ProposeValueInput(in.Value))
		return nil

	case InputProposal:
		return d.applyProposal(in.Proposal, in.Validity)

	case InputVote:
		return d.applyVote(in.Vote)

	case InputCommitCertificate:
		return d.applyCommitCertificate(in.CommitCertificate)

	case InputPolkaCertificate:
		return d.applyPolkaCertificate(in.PolkaCertificate)

	case InputTimeoutElapsed:
		return d.applyTimeout(in.Timeout)

	default:
		return fmt.Errorf("unknown driver input kind %d", in.Kind)
	}
}

func (d *Driver) applyNewRound(in Input) error {
	if in.Height != d.height {
		return fmt.Errorf(
			"new round height %d does not match consensus height %d",
			in.Height, d.height,
		)
	}

	if in.Proposer == "" {
		return NoProposerError{Height: in.Height, Round: in.Round}
	}
	if _, ok := d.valSet.GetByAddress(in.Proposer); !ok {
		return ProposerNotFoundError{Address: in.Proposer}
	}

	if d.roundState.Step == malround.StepCommit {
		d.log.Debug("Ignoring new round after decision", "round", in.Round)
		return nil
	}

	d.proposer = in.Proposer

	// A skip or precommit timeout may already have positioned the state
	// at this round; reposition only if needed.
	if d.roundState.Round != in.Round || d.roundState.Step != malround.StepUnstarted {
		d.roundState = d.roundState.NewRound(in.Round)
	}

	d.enqueue(malround.NewRoundInput(in.Round))
	return nil
}

func (d *Driver) applyProposal(sp malcore.SignedProposal, validity malcore.Validity) error {
	p := sp.Proposal

	if p.Height != d.height {
		return InvalidProposalHeightError{
			ProposalHeight:  p.Height,
			ConsensusHeight: d.height,
		}
	}

	val, ok := d.valSet.GetByAddress(p.Proposer)
	if !ok {
		return ProposerNotFoundError{Address: p.Proposer}
	}

	if !d.signing.VerifyProposal(sp, val.PubKey) {
		return fmt.Errorf("proposal from %s: %w", p.Proposer, ErrInvalidSignature)
	}

	d.proposalKeeper.Apply(sp, validity)

	d.enqueue(d.muxProposal(p, validity)...)
	return nil
}

func (d *Driver) applyVote(sv malcore.SignedVote) error {
	v := sv.Vote

	if v.Height != d.height {
		return InvalidVoteHeightError{
			VoteHeight:      v.Height,
			ConsensusHeight: d.height,
		}
	}

	val, ok := d.valSet.GetByAddress(v.Validator)
	if !ok {
		return ValidatorNotFoundError{Address: v.Validator}
	}

	if !d.signing.VerifyVote(sv, val.PubKey) {
		return fmt.Errorf("vote from %s: %w", v.Validator, ErrInvalidSignature)
	}

	if out := d.voteKeeper.ApplyVote(sv, val.Power, d.roundState.Round); out != nil {
		d.enqueue(d.muxVoteKeeperOutput(*out)...)
	}
	return nil
}

func (d *Driver) applyCommitCertificate(cert malcore.CommitCertificate) error {
	if cert.Height != d.height {
		return InvalidCertificateHeightError{
			CertificateHeight: cert.Height,
			ConsensusHeight:   d.height,
		}
	}

	if err := cert.Verify(d.signing, d.valSet, d.params); err != nil {
		return InvalidCertificateError{
			Height:  cert.Height,
			Round:   cert.Round,
			ValueID: cert.ValueID,
			Reason:  err,
		}
	}

	stored := d.proposalKeeper.ByValue(cert.Round, cert.ValueID)
	if stored == nil {
		return InvalidCertificateError{
			Height:  cert.Height,
			Round:   cert.Round,
			ValueID: cert.ValueID,
			Reason:  fmt.Errorf("no proposal known for certified value"),
		}
	}

	d.enqueue(malround.ProposalAndPrecommitValueInput(stored.Proposal.Proposal))
	return nil
}

func (d *Driver) applyPolkaCertificate(cert malcore.PolkaCertificate) error {
	if cert.Height != d.height {
		return InvalidCertificateHeightError{
			CertificateHeight: cert.Height,
			ConsensusHeight:   d.height,
		}
	}

	if err := cert.Verify(d.signing, d.valSet, d.params); err != nil {
		return InvalidCertificateError{
			Height:  cert.Height,
			Round:   cert.Round,
			ValueID: cert.ValueID,
			Reason:  err,
		}
	}

	d.enqueue(d.muxPolkaValue(cert.Round, cert.ValueID)...)
	return nil
}

func (d *Driver) applyTimeout(t malcore.Timeout) error {
	if t.Round != d.roundState.Round {
		// Stale timer from an earlier round; dropping it is the
		// cancellation mechanism.
		d.log.Debug(
			"Dropping timeout for a different round",
			"timeout", t, "round", d.roundState.Round,
		)
		return nil
	}

	switch t.Kind {
	case malcore.TimeoutPropose:
		d.enqueue(malround.TimeoutProposeInput())
	case malcore.TimeoutPrevote:
		d.enqueue(malround.TimeoutPrevoteInput())
	case malcore.TimeoutPrecommit:
		d.enqueue(malround.TimeoutPrecommitInput())
	default:
		return fmt.Errorf("unknown timeout kind %d", t.Kind)
	}
	return nil
}

func (d *Driver) enqueue(ins ...malround.Input) {
	d.pending = append(d.pending, ins...)
}

// drainPending applies queued round inputs until none remain,
// collecting outputs in order.
// Applying an input can induce further inputs
// (a step change re-multiplexes already known thresholds and proposals);
// those are appended and drained in the same call.
func (d *Driver) drainPending() []Output {
	var outs []Output

	for len(d.pending) > 0 {
		in := d.pending[0]
		d.pending = d.pending[1:]

		prevStep := d.roundState.Step
		prevRound := d.roundState.Round

		info := malround.NewInfo(d.address, d.proposer)
		tr := malround.Apply(d.roundState, info, in)
		if !tr.Valid {
			d.log.Debug(
				"Round state machine dropped input",
				"input", in.Kind, "step", d.roundState.Step,
			)
			continue
		}

		d.roundState = tr.NextState

		if tr.Output != nil {
			outs = append(outs, d.liftRoundOutput(*tr.Output)...)
		}

		if d.roundState.Step != prevStep || d.roundState.Round != prevRound {
			d.enqueue(d.muxStepChange()...)
		}
	}

	return outs
}

// liftRoundOutput turns one state machine output into driver outputs,
// signing our own votes and proposals on the way out.
func (d *Driver) liftRoundOutput(o malround.Output) []Output {
	switch o.Kind {
	case malround.OutputNewRound:
		return []Output{NewRoundOutput(d.height, o.Round)}

	case malround.OutputProposal:
		sp, err := d.signing.SignProposal(o.Proposal)
		if err != nil {
			d.log.Error("Failed to sign own proposal", "err", err)
			return nil
		}
		return []Output{ProposeOutput(sp)}

	case malround.OutputVote:
		sv, err := d.signing.SignVote(o.Vote)
		if err != nil {
			d.log.Error("Failed to sign own vote", "err", err)
			return nil
		}
		return []Output{VoteOutput(sv)}

	case malround.OutputScheduleTimeout:
		return d.scheduleTimeout(o.Timeout)

	case malround.OutputGetValueAndScheduleTimeout:
		outs := d.scheduleTimeout(o.Timeout)
		return append(outs, GetValueOutput(o.Height, o.Round, o.Timeout))

	case malround.OutputDecision:
		sp := malcore.SignedProposal{Proposal: o.Proposal}
		if stored := d.proposalKeeper.ByValue(o.Round, o.Proposal.Value.ID); stored != nil {
			sp = stored.Proposal
		}
		return []Output{DecideOutput(o.Round, sp)}

	default:
		d.log.Error("Unknown round output kind", "kind", o.Kind)
		return nil
	}
}

func (d *Driver) scheduleTimeout(t malcore.Timeout) []Output {
	if _, ok := d.scheduled[t]; ok {
		return nil
	}
	d.scheduled[t] = struct{}{}
	return []Output{ScheduleTimeoutOutput(t)}
}
