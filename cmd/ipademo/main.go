// Command ipademo drives one end-to-end FinalIPA prove/verify round over
// P-256, logging each stage the way the teacher's own command-line
// entry point logged each stage of its protocol run.
package main

import (
	"log"
	"math/big"

	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipa"
	"github.com/arcfold/ipacore/transcript"
)

func main() {
	gp := group.P256()
	order := gp.N()

	const n = 8
	gens, err := group.NewCommitGens(gp, "ipademo-gens", n)
	if err != nil {
		log.Fatalf("derive generators: %v", err)
	}

	xVec := make([]field.Scalar, n)
	aVec := make([]field.Scalar, n)
	for i := 0; i < n; i++ {
		xVec[i] = field.FromUint64(uint64(i+1), order)
		aVec[i] = field.FromUint64(uint64(2*i+1), order)
	}

	scalars := make([]*big.Int, n)
	for i, x := range xVec {
		scalars[i] = x.BigInt()
	}
	commX, err := group.Commit(scalars, gens)
	if err != nil {
		log.Fatalf("commit x_vec: %v", err)
	}
	commXC, err := group.Compress(commX)
	if err != nil {
		log.Fatalf("compress commitment: %v", err)
	}

	y := field.Zero(order)
	for i := 0; i < n; i++ {
		y = y.Add(xVec[i].Mul(aVec[i]))
	}

	U, err := ipa.NewInnerProductInstance(gp, commXC, aVec, y)
	if err != nil {
		log.Fatalf("build instance: %v", err)
	}
	W := ipa.NewInnerProductWitness(xVec)

	log.Printf("proving FinalIPA for n=%d over %s", n, gp.Name())
	proveTr := transcript.New("ipademo")
	proof, err := ipa.ProveFinal(U, W, gens, proveTr, gp)
	if err != nil {
		log.Fatalf("prove: %v", err)
	}
	log.Printf("proof has %d reduction rounds", len(proof.LVec))

	verifyTr := transcript.New("ipademo")
	if err := proof.VerifyFinal(n, U, gens, verifyTr, gp); err != nil {
		log.Fatalf("verify: %v", err)
	}
	log.Printf("verified OK, x_hat=%s", proof.XHat.BigInt().Text(16))
}
