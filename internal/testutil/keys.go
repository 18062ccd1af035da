package testutil

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Keypair is a hex-encoded Ed25519 keypair, matching the (privHex, pubHex)
// shape pcrypto.GenerateKeypair returns.
type Keypair struct {
	PrivateKey string
	PublicKey  string
}

// DeterministicKeypair derives a fixed Ed25519 keypair from label. The same
// label always yields the same keypair, so tests that need a stable agent
// id across runs (golden fixtures, reproducing a prior failure) don't have
// to hardcode raw key material.
func DeterministicKeypair(label string) Keypair {
	seed := sha256.Sum256([]byte("primordia-testutil:" + label))
	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := priv.Public().(ed25519.PublicKey)
	return Keypair{
		PrivateKey: hex.EncodeToString(priv),
		PublicKey:  hex.EncodeToString(pub),
	}
}

// DeterministicKeypairs derives n distinct deterministic keypairs, labeled
// prefix-0, prefix-1, and so on.
func DeterministicKeypairs(prefix string, n int) []Keypair {
	kps := make([]Keypair, n)
	for i := range kps {
		kps[i] = DeterministicKeypair(prefix + "-" + strconv.Itoa(i))
	}
	return kps
}
