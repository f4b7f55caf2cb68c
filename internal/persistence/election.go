package persistence

import (
	"time"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// applyElection dispatches ElectionVote/AnnounceCandidacy/RenounceCandidacy/
// StartRepresenting/StopRepresenting against the candidacy/representative/
// voting-power tables.
func (v *Validator) applyElection(tx store.Tx, req *types.Request, reqHash types.Hash, epoch types.EpochNum) error {
	switch req.Type {
	case types.RequestElectionVote:
		if err := v.applyElectionVote(tx, req); err != nil {
			return err
		}
	case types.RequestAnnounceCandidacy:
		if err := tx.PutCandidacy(req.Origin, &types.CandidacyInfo{
			Account:      req.Origin,
			BlsPublicKey: req.AnnounceCandidacy.BlsPublicKey,
			Active:       true,
		}); err != nil {
			return err
		}
		if err := tx.PutRepresentative(req.Origin, &types.RepresentativeInfo{IsRep: true, EpochStarted: epoch}); err != nil {
			return err
		}
	case types.RequestRenounceCandidacy:
		candidacy, err := tx.GetCandidacy(req.Origin)
		if err == nil {
			candidacy.Active = false
			if err := tx.PutCandidacy(req.Origin, candidacy); err != nil {
				return err
			}
		} else if err != store.ErrNotFound {
			return err
		}
	case types.RequestStartRepresenting:
		if err := tx.PutRepresentative(req.Origin, &types.RepresentativeInfo{IsRep: true, EpochStarted: epoch}); err != nil {
			return err
		}
	case types.RequestStopRepresenting:
		rep, err := tx.GetRepresentative(req.Origin)
		if err == nil {
			rep.IsRep = false
			if err := tx.PutRepresentative(req.Origin, rep); err != nil {
				return err
			}
		} else if err != store.ErrNotFound {
			return err
		}
		vp, err := tx.GetVotingPower(req.Origin)
		if err == nil && vp.IsPrunable() {
			if err := tx.DeleteVotingPower(req.Origin); err != nil {
				return err
			}
		} else if err != nil && err != store.ErrNotFound {
			return err
		}
	}

	account, err := tx.GetAccount(req.Origin)
	if err != nil {
		return err
	}
	account.Head = reqHash
	account.BlockCount++
	account.Reservation = types.ZeroHash
	account.Modified = time.Now().Unix()
	return tx.PutAccount(req.Origin, account)
}

// applyElectionVote tallies origin's weighted ballot into each candidate's
// VotesReceived. Weights are caller-supplied per-candidate splits of
// origin's total voting weight; the election tally module (not this
// package) is responsible for rejecting a ballot whose weights exceed what
// origin is entitled to cast.
func (v *Validator) applyElectionVote(tx store.Tx, req *types.Request) error {
	p := req.ElectionVote
	for i, candidate := range p.Candidates {
		if i >= len(p.Weights) {
			break
		}
		c, err := tx.GetCandidacy(candidate)
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			return err
		}
		sum, err := c.VotesReceived.Add(p.Weights[i])
		if err != nil {
			return err
		}
		c.VotesReceived = sum
		if err := tx.PutCandidacy(candidate, c); err != nil {
			return err
		}
	}
	return nil
}
