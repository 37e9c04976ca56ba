package number

import (
	"fmt"

	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Decimal-exact sequence generation.
 *
 * Walks from 'from' toward 'to' by 'step', inclusive of both endpoints,
 * accumulating in decimal so repeated float addition cannot drift past or
 * short of the endpoint (0.1 + 0.1 + ... lands exactly).
 *
 * Termination: a step whose sign opposes the from->to direction can never
 * reach the endpoint and is rejected up front with ErrInfiniteSequence.
 * An element cap rejects near-zero steps that would otherwise run for
 * minutes before finishing.
 */

// Sequence generates the inclusive arithmetic sequence from..to by step.
// A zero or direction-opposing step returns types.ErrInfiniteSequence.
// maxElements <= 0 applies types.MaxSequenceElements.
func Sequence(from, to, step float64, maxElements int) ([]float64, error) {
	if maxElements <= 0 {
		maxElements = types.MaxSequenceElements
	}

	nfrom := Normalize(from)
	nto := Normalize(to)
	nstep := Normalize(step)

	span := nto.Sub(nfrom)
	if nstep.IsZero() || (!span.IsZero() && nstep.Sign() != span.Sign()) {
		return nil, types.ErrInfiniteSequence
	}

	var out []float64
	cur := nfrom
	for {
		done := cur.Sub(nfrom).Abs().Cmp(span.Abs()) > 0
		if done {
			break
		}
		if len(out) >= maxElements {
			return nil, fmt.Errorf("sequence exceeds %d elements", maxElements)
		}
		out = append(out, ToFloat(cur))
		cur = roundSignificant(cur.Add(nstep))
		if span.IsZero() {
			break
		}
	}
	return out, nil
}
