// Package pcrypto provides the protocol's cryptographic primitives: a
// 256-bit content hash (BLAKE3) and Ed25519 detached signatures over
// hex-encoded digests. Every operation is pure — no I/O, no global state —
// so it is safe to call concurrently from any number of goroutines.
package pcrypto

import (
	"crypto/ed25519"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/oerc-s/primordia/pkg/perrors"
	"golang.org/x/crypto/ripemd160"
	"lukechampine.com/blake3"
)

// Hash returns the hex-encoded 256-bit BLAKE3 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GenerateKeypair creates an Ed25519 keypair and returns
// (private_key_hex, public_key_hex). The public key doubles as the agent id
// throughout the protocol.
func GenerateKeypair() (privHex, pubHex string, err error) {
	pub, priv, err := ed25519.GenerateKey(crand.Reader)
	if err != nil {
		return "", "", perrors.Wrap(perrors.KindSignature, err, "generate keypair")
	}
	return hex.EncodeToString(priv), hex.EncodeToString(pub), nil
}

// Sign signs the raw bytes of digestHex (decoded from hex, not the hex
// string itself) with the Ed25519 private key privHex, returning a
// hex-encoded signature.
func Sign(digestHex, privHex string) (string, error) {
	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return "", perrors.Wrap(perrors.KindSignature, err, "decode digest")
	}
	privBytes, err := hex.DecodeString(privHex)
	if err != nil {
		return "", perrors.Wrap(perrors.KindSignature, err, "decode private key")
	}
	if len(privBytes) != ed25519.PrivateKeySize {
		return "", perrors.New(perrors.KindSignature, "private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(privBytes))
	}
	sig := ed25519.Sign(ed25519.PrivateKey(privBytes), digest)
	return hex.EncodeToString(sig), nil
}

// Verify reports whether sigHex is a valid Ed25519 signature over the raw
// bytes of digestHex under public key pubHex. Any parsing failure or bad
// signature yields false; Verify never returns an error.
func Verify(digestHex, sigHex, pubHex string) bool {
	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return false
	}
	pubBytes, err := hex.DecodeString(pubHex)
	if err != nil {
		return false
	}
	if len(pubBytes) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubBytes), digest, sig)
}

// RandomNonceHex returns n bytes of cryptographically strong randomness,
// hex-encoded (2n hex characters). MSR nonces use n=16 for 32 hex chars.
func RandomNonceHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := crand.Read(buf); err != nil {
		return "", perrors.Wrap(perrors.KindSignature, err, "generate nonce")
	}
	return hex.EncodeToString(buf), nil
}

// ShortID derives a 20-byte, 40-hex-character identifier from an agent's
// public key: SHA-256(pubkey) -> RIPEMD-160. It is shorter and easier to
// read in logs and CLI output than the full 32-byte public key, and is
// purely a display convenience — agent_id fields in signed records always
// carry the full public key hex, never ShortID.
func ShortID(pubHex string) (string, error) {
	pubBytes, err := hex.DecodeString(pubHex)
	if err != nil {
		return "", perrors.Wrap(perrors.KindSignature, err, "decode public key")
	}
	sum := sha256.Sum256(pubBytes)
	r := ripemd160.New()
	r.Write(sum[:])
	return hex.EncodeToString(r.Sum(nil)), nil
}
