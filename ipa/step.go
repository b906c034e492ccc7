package ipa

import (
	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipaerr"
	"github.com/arcfold/ipacore/transcript"
)

// StepIPA folds two inner-product instances+witnesses into one via a
// single transcript challenge, emitting a single cross-term scalar
// (spec.md §4.2).
type StepIPA struct {
	C field.Scalar
}

func stepProtocolName() string { return "inner product argument (step)" }

// ProveStep folds (U1, W1) and (U2, W2), both of identical length n,
// into a single instance/witness pair. It returns the step proof, the
// folded instance, and the folded witness.
func ProveStep(U1 InnerProductInstance, W1 InnerProductWitness, U2 InnerProductInstance, W2 InnerProductWitness, tr *transcript.Transcript, gp group.Group) (StepIPA, InnerProductInstance, InnerProductWitness, error) {
	if len(W1.XVec) != len(W2.XVec) || len(U1.AVec) != len(U2.AVec) || len(W1.XVec) != len(U1.AVec) {
		return StepIPA{}, InnerProductInstance{}, InnerProductWitness{}, ipaerr.ErrInvalidInputLength
	}

	tr.Absorb("protocol-name", []byte(stepProtocolName()))
	absorbElement(tr, "U1_comm_x_vec", U1.CommXVec)
	absorbElement(tr, "U2_comm_x_vec", U2.CommXVec)

	order := W1.XVec[0].Order
	n := len(W1.XVec)

	// C = <W1.x_vec, U2.a_vec> + <W2.x_vec, U1.a_vec>
	t1 := field.Zero(order)
	t2 := field.Zero(order)
	for i := 0; i < n; i++ {
		t1 = t1.Add(W1.XVec[i].Mul(U2.AVec[i]))
		t2 = t2.Add(W2.XVec[i].Mul(U1.AVec[i]))
	}
	C := t1.Add(t2)

	tr.AbsorbScalar("C", C.Bytes())
	r := field.New(tr.Challenge("r", order), order)

	xVec := make([]field.Scalar, n)
	aVec := make([]field.Scalar, n)
	for i := 0; i < n; i++ {
		xVec[i] = W1.XVec[i].Add(r.Mul(W2.XVec[i]))
		aVec[i] = U1.AVec[i].Add(r.Mul(U2.AVec[i]))
	}
	y := U1.Y.Add(r.Mul(r).Mul(U2.Y)).Add(r.Mul(C))

	commXVec := gp.Element().Add(U1.CommXVec, gp.Element().Scale(U2.CommXVec, r.BigInt()))

	return StepIPA{C: C},
		InnerProductInstance{CommXVec: commXVec, AVec: aVec, Y: y},
		InnerProductWitness{XVec: xVec},
		nil
}

// VerifyStep replays the same transcript interactions as ProveStep
// without ever seeing a witness, and returns the folded instance. Per
// spec.md §9's open question, the folded instance is returned for an
// orchestrator to compare against its own expectations; this core does
// not perform that comparison itself.
func (s StepIPA) VerifyStep(U1, U2 InnerProductInstance, tr *transcript.Transcript, gp group.Group) (InnerProductInstance, error) {
	if len(U1.AVec) != len(U2.AVec) {
		return InnerProductInstance{}, ipaerr.ErrInvalidInputLength
	}

	tr.Absorb("protocol-name", []byte(stepProtocolName()))
	absorbElement(tr, "U1_comm_x_vec", U1.CommXVec)
	absorbElement(tr, "U2_comm_x_vec", U2.CommXVec)

	tr.AbsorbScalar("C", s.C.Bytes())
	order := U1.AVec[0].Order
	r := field.New(tr.Challenge("r", order), order)

	n := len(U1.AVec)
	aVec := make([]field.Scalar, n)
	for i := 0; i < n; i++ {
		aVec[i] = U1.AVec[i].Add(r.Mul(U2.AVec[i]))
	}
	y := U1.Y.Add(r.Mul(r).Mul(U2.Y)).Add(r.Mul(s.C))
	commXVec := gp.Element().Add(U1.CommXVec, gp.Element().Scale(U2.CommXVec, r.BigInt()))

	return InnerProductInstance{CommXVec: commXVec, AVec: aVec, Y: y}, nil
}

func absorbElement(tr *transcript.Transcript, label string, e group.Element) {
	b, _ := e.MarshalBinary()
	tr.Absorb(label, b)
}

