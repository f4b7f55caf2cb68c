package types

import (
	"encoding/binary"
	"io"
)

// Hashable streams the fields that participate in a value's content hash,
// in declared order, into w. Implementations MUST NOT include their own
// signature/aggregate-signature fields: those are computed *over* the
// content hash, not folded into it. Equality under == must imply equal
// hash, which holds here because every Hashable writes a fixed,
// order-preserving encoding of its fields.
type Hashable interface {
	WriteHashable(w io.Writer) error
}

func writeUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeHash(w io.Writer, h Hash) error {
	_, err := w.Write(h[:])
	return err
}

func writeAmount(w io.Writer, a Amount) error {
	var b [16]byte
	a.PutBigEndian(b[:])
	_, err := w.Write(b[:])
	return err
}

func writeBool(w io.Writer, b bool) error {
	if b {
		return writeUint8(w, 1)
	}
	return writeUint8(w, 0)
}

func writeBytes(w io.Writer, b []byte) error {
	if err := writeUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func writeString(w io.Writer, s string) error {
	return writeBytes(w, []byte(s))
}

// WriteHashable implements Hashable for RequestBlock. It covers exactly the
// common prefix plus type-specific body, never the AggSig field.
func (b *RequestBlock) WriteHashable(w io.Writer) error {
	if err := writeUint8(w, uint8(BlockTypeRequest)); err != nil {
		return err
	}
	if err := writeUint8(w, b.PrimaryDelegateIdx); err != nil {
		return err
	}
	if err := writeUint32(w, b.EpochNum); err != nil {
		return err
	}
	if err := writeUint32(w, b.Sequence); err != nil {
		return err
	}
	if err := writeHash(w, b.Previous); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(b.Timestamp.UnixNano())); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(b.Requests))); err != nil {
		return err
	}
	for i := range b.Requests {
		if err := b.Requests[i].WriteHashable(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteHashable implements Hashable for MicroBlock.
func (b *MicroBlock) WriteHashable(w io.Writer) error {
	if err := writeUint8(w, uint8(BlockTypeMicro)); err != nil {
		return err
	}
	if err := writeUint8(w, b.PrimaryDelegateIdx); err != nil {
		return err
	}
	if err := writeUint32(w, b.EpochNum); err != nil {
		return err
	}
	if err := writeUint32(w, b.Sequence); err != nil {
		return err
	}
	if err := writeHash(w, b.Previous); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(b.Timestamp.UnixNano())); err != nil {
		return err
	}
	if err := writeBool(w, b.LastMicroBlock); err != nil {
		return err
	}
	for _, t := range b.Tips {
		if err := writeHash(w, t); err != nil {
			return err
		}
	}
	return nil
}

// WriteHashable implements Hashable for EpochBlock.
func (b *EpochBlock) WriteHashable(w io.Writer) error {
	if err := writeUint8(w, uint8(BlockTypeEpoch)); err != nil {
		return err
	}
	if err := writeUint32(w, b.EpochNum); err != nil {
		return err
	}
	if err := writeHash(w, b.Previous); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(b.Timestamp.UnixNano())); err != nil {
		return err
	}
	if err := writeHash(w, b.MicroBlockTip); err != nil {
		return err
	}
	for _, d := range b.Delegates {
		if err := writeHash(w, d.Account); err != nil {
			return err
		}
		if err := writeAmount(w, d.Vote); err != nil {
			return err
		}
		if err := writeAmount(w, d.Stake); err != nil {
			return err
		}
		if err := writeBool(w, d.StartingTerm); err != nil {
			return err
		}
	}
	return nil
}

// WriteHashable implements Hashable for Request's common envelope plus its
// variant payload. Next is excluded: it is back-patched after sealing and
// is not part of the content that gets signed.
func (r *Request) WriteHashable(w io.Writer) error {
	if err := writeUint8(w, uint8(r.Type)); err != nil {
		return err
	}
	if err := writeHash(w, r.Origin); err != nil {
		return err
	}
	if err := writeHash(w, r.Previous); err != nil {
		return err
	}
	if err := writeAmount(w, r.Fee); err != nil {
		return err
	}
	if err := writeUint32(w, r.Sequence); err != nil {
		return err
	}
	if err := writeUint64(w, r.Work); err != nil {
		return err
	}
	return r.writePayload(w)
}

func (r *Request) writePayload(w io.Writer) error {
	switch r.Type {
	case RequestSend:
		p := r.Send
		if err := writeHash(w, p.To); err != nil {
			return err
		}
		return writeAmount(w, p.Amount)
	case RequestTokenSend:
		p := r.TokenSend
		if err := writeHash(w, p.TokenID); err != nil {
			return err
		}
		if err := writeHash(w, p.To); err != nil {
			return err
		}
		return writeAmount(w, p.Amount)
	case RequestIssuance:
		p := r.Issuance
		if err := writeHash(w, p.TokenID); err != nil {
			return err
		}
		if err := writeString(w, p.Symbol); err != nil {
			return err
		}
		if err := writeString(w, p.Name); err != nil {
			return err
		}
		if err := writeAmount(w, p.TotalSupply); err != nil {
			return err
		}
		if err := writeUint8(w, uint8(p.FeeType)); err != nil {
			return err
		}
		if err := writeAmount(w, p.FeeRate); err != nil {
			return err
		}
		if err := writeUint32(w, p.Settings); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(p.Controllers))); err != nil {
			return err
		}
		for _, c := range p.Controllers {
			if err := writeHash(w, c); err != nil {
				return err
			}
		}
		return nil
	case RequestRevoke, RequestAdjustFee, RequestUpdateController, RequestChangeSetting,
		RequestImmuteSetting, RequestWithdrawFee, RequestDistribute, RequestWithdrawLogos, RequestTokenBurn:
		p := r.Governance
		if err := writeHash(w, p.TokenID); err != nil {
			return err
		}
		if err := writeHash(w, p.Target); err != nil {
			return err
		}
		if err := writeAmount(w, p.Amount); err != nil {
			return err
		}
		if err := writeAmount(w, p.FeeRate); err != nil {
			return err
		}
		if err := writeUint8(w, uint8(p.Setting)); err != nil {
			return err
		}
		if err := writeBool(w, p.NewValue); err != nil {
			return err
		}
		return writeHash(w, p.Controller)
	case RequestElectionVote:
		p := r.ElectionVote
		if err := writeUint32(w, p.Epoch); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(p.Candidates))); err != nil {
			return err
		}
		for i, c := range p.Candidates {
			if err := writeHash(w, c); err != nil {
				return err
			}
			if err := writeAmount(w, p.Weights[i]); err != nil {
				return err
			}
		}
		return nil
	case RequestAnnounceCandidacy:
		_, err := w.Write(r.AnnounceCandidacy.BlsPublicKey[:])
		return err
	case RequestRenounceCandidacy, RequestStartRepresenting, RequestStopRepresenting:
		return nil
	case RequestStake:
		p := r.Stake
		if err := writeHash(w, p.Target); err != nil {
			return err
		}
		return writeAmount(w, p.Amount)
	case RequestUnstake:
		return writeHash(w, r.Unstake.Target)
	case RequestProxy:
		p := r.Proxy
		if err := writeHash(w, p.Target); err != nil {
			return err
		}
		if err := writeAmount(w, p.Amount); err != nil {
			return err
		}
		return writeBool(w, p.Locked)
	case RequestClaim:
		p := r.Claim
		if err := writeHash(w, p.Target); err != nil {
			return err
		}
		return writeAmount(w, p.Amount)
	default:
		return io.ErrUnexpectedEOF
	}
}
