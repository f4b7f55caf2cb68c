package codec

import (
	"bytes"
	"fmt"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// MarshalRequest renders r as {envelope+payload content, signature, next}.
// The content portion is exactly r.WriteHashable's output so that
// hash(Unmarshal(Marshal(r))) == hash(r).
func MarshalRequest(r *types.Request) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteHashable(&buf); err != nil {
		return nil, err
	}
	buf.Write(r.Signature[:])
	buf.Write(r.Next[:])
	return buf.Bytes(), nil
}

// UnmarshalRequest parses a buffer produced by MarshalRequest.
func UnmarshalRequest(data []byte) (*types.Request, error) {
	c := newCursor(data)
	r, err := unmarshalRequestInto(c)
	if err != nil {
		return nil, err
	}
	if err := c.need(64); err != nil {
		return nil, err
	}
	copy(r.Signature[:], c.b[c.pos:c.pos+64])
	c.pos += 64
	if r.Next, err = c.hash(); err != nil {
		return nil, err
	}
	return r, nil
}

// unmarshalRequestInto parses the envelope + payload content (everything
// WriteHashable emits) of one request from c, leaving the cursor positioned
// right after the payload, i.e. before Signature/Next for top-level
// requests, or before the next request's type tag when called from
// UnmarshalRequestBlock.
func unmarshalRequestInto(c *cursor) (*types.Request, error) {
	r := &types.Request{}
	typ, err := c.uint8()
	if err != nil {
		return nil, err
	}
	r.Type = types.RequestType(typ)
	if r.Origin, err = c.hash(); err != nil {
		return nil, err
	}
	if r.Previous, err = c.hash(); err != nil {
		return nil, err
	}
	if r.Fee, err = c.amount(); err != nil {
		return nil, err
	}
	if r.Sequence, err = c.uint32(); err != nil {
		return nil, err
	}
	if r.Work, err = c.uint64(); err != nil {
		return nil, err
	}
	if err := unmarshalPayload(c, r); err != nil {
		return nil, err
	}
	return r, nil
}

func unmarshalPayload(c *cursor, r *types.Request) error {
	var err error
	switch r.Type {
	case types.RequestSend:
		p := &types.SendPayload{}
		if p.To, err = c.hash(); err != nil {
			return err
		}
		if p.Amount, err = c.amount(); err != nil {
			return err
		}
		r.Send = p
	case types.RequestTokenSend:
		p := &types.TokenSendPayload{}
		if p.TokenID, err = c.hash(); err != nil {
			return err
		}
		if p.To, err = c.hash(); err != nil {
			return err
		}
		if p.Amount, err = c.amount(); err != nil {
			return err
		}
		r.TokenSend = p
	case types.RequestIssuance:
		p := &types.IssuancePayload{}
		if p.TokenID, err = c.hash(); err != nil {
			return err
		}
		if p.Symbol, err = c.str(); err != nil {
			return err
		}
		if p.Name, err = c.str(); err != nil {
			return err
		}
		if p.TotalSupply, err = c.amount(); err != nil {
			return err
		}
		feeType, err := c.uint8()
		if err != nil {
			return err
		}
		p.FeeType = types.TokenFeeType(feeType)
		if p.FeeRate, err = c.amount(); err != nil {
			return err
		}
		if p.Settings, err = c.uint32(); err != nil {
			return err
		}
		n, err := c.uint32()
		if err != nil {
			return err
		}
		p.Controllers = make([]types.Hash, n)
		for i := range p.Controllers {
			if p.Controllers[i], err = c.hash(); err != nil {
				return err
			}
		}
		r.Issuance = p
	case types.RequestRevoke, types.RequestAdjustFee, types.RequestUpdateController, types.RequestChangeSetting,
		types.RequestImmuteSetting, types.RequestWithdrawFee, types.RequestDistribute, types.RequestWithdrawLogos, types.RequestTokenBurn:
		p := &types.GovernancePayload{}
		if p.TokenID, err = c.hash(); err != nil {
			return err
		}
		if p.Target, err = c.hash(); err != nil {
			return err
		}
		if p.Amount, err = c.amount(); err != nil {
			return err
		}
		if p.FeeRate, err = c.amount(); err != nil {
			return err
		}
		setting, err := c.uint8()
		if err != nil {
			return err
		}
		p.Setting = types.TokenSetting(setting)
		if p.NewValue, err = c.boolean(); err != nil {
			return err
		}
		if p.Controller, err = c.hash(); err != nil {
			return err
		}
		r.Governance = p
	case types.RequestElectionVote:
		p := &types.ElectionVotePayload{}
		epoch, err := c.uint32()
		if err != nil {
			return err
		}
		p.Epoch = epoch
		n, err := c.uint32()
		if err != nil {
			return err
		}
		p.Candidates = make([]types.Hash, n)
		p.Weights = make([]types.Amount, n)
		for i := range p.Candidates {
			if p.Candidates[i], err = c.hash(); err != nil {
				return err
			}
			if p.Weights[i], err = c.amount(); err != nil {
				return err
			}
		}
		r.ElectionVote = p
	case types.RequestAnnounceCandidacy:
		p := &types.AnnounceCandidacyPayload{}
		if err := c.need(96); err != nil {
			return err
		}
		copy(p.BlsPublicKey[:], c.b[c.pos:c.pos+96])
		c.pos += 96
		r.AnnounceCandidacy = p
	case types.RequestRenounceCandidacy:
		// no payload
	case types.RequestStartRepresenting:
		r.StartRepresenting = &types.StartRepresentingPayload{}
	case types.RequestStopRepresenting:
		// no payload
	case types.RequestStake:
		p := &types.StakePayload{}
		if p.Target, err = c.hash(); err != nil {
			return err
		}
		if p.Amount, err = c.amount(); err != nil {
			return err
		}
		r.Stake = p
	case types.RequestUnstake:
		p := &types.UnstakePayload{}
		if p.Target, err = c.hash(); err != nil {
			return err
		}
		r.Unstake = p
	case types.RequestProxy:
		p := &types.ProxyPayload{}
		if p.Target, err = c.hash(); err != nil {
			return err
		}
		if p.Amount, err = c.amount(); err != nil {
			return err
		}
		if p.Locked, err = c.boolean(); err != nil {
			return err
		}
		r.Proxy = p
	case types.RequestClaim:
		p := &types.ClaimPayload{}
		if p.Target, err = c.hash(); err != nil {
			return err
		}
		if p.Amount, err = c.amount(); err != nil {
			return err
		}
		r.Claim = p
	default:
		return fmt.Errorf("codec: unknown request type %d", r.Type)
	}
	return nil
}
