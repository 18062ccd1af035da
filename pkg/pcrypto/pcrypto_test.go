package pcrypto

import "testing"

func TestGenerateKeypairAndSignVerifyRoundTrip(t *testing.T) {
	priv, pub, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	digest := Hash([]byte("settlement content"))
	sig, err := Sign(digest, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !Verify(digest, sig, pub) {
		t.Fatalf("expected signature to verify under the matching public key")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	_, pub1, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	priv2, _, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	digest := Hash([]byte("data"))
	sig, err := Sign(digest, priv2)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if Verify(digest, sig, pub1) {
		t.Fatalf("expected verification to fail under a non-matching public key")
	}
}

func TestVerifyRejectsTamperedDigest(t *testing.T) {
	priv, pub, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	digest := Hash([]byte("original"))
	sig, err := Sign(digest, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	tampered := Hash([]byte("tampered"))
	if Verify(tampered, sig, pub) {
		t.Fatalf("expected verification to fail over a different digest")
	}
}

func TestVerifyRejectsMalformedInput(t *testing.T) {
	if Verify("not-hex", "also-not-hex", "nope") {
		t.Fatalf("expected Verify to return false, not panic, on malformed hex")
	}
}

func TestHashIsDeterministic(t *testing.T) {
	a := Hash([]byte("same input"))
	b := Hash([]byte("same input"))
	if a != b {
		t.Fatalf("Hash is not deterministic: %q vs %q", a, b)
	}
	c := Hash([]byte("different input"))
	if a == c {
		t.Fatalf("Hash collided across different inputs")
	}
}

func TestShortIDDeterministicAndDistinct(t *testing.T) {
	_, pub1, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, pub2, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	a, err := ShortID(pub1)
	if err != nil {
		t.Fatalf("ShortID: %v", err)
	}
	b, err := ShortID(pub1)
	if err != nil {
		t.Fatalf("ShortID: %v", err)
	}
	if a != b {
		t.Fatalf("ShortID is not deterministic: %q vs %q", a, b)
	}
	if len(a) != 40 {
		t.Fatalf("len(ShortID) = %d, want 40 (20 bytes hex-encoded)", len(a))
	}

	c, err := ShortID(pub2)
	if err != nil {
		t.Fatalf("ShortID: %v", err)
	}
	if a == c {
		t.Fatalf("expected distinct public keys to produce distinct short ids")
	}
}

func TestShortIDRejectsMalformedInput(t *testing.T) {
	if _, err := ShortID("not-hex"); err == nil {
		t.Fatalf("expected an error for malformed hex input")
	}
}

func TestRandomNonceHexLength(t *testing.T) {
	nonce, err := RandomNonceHex(16)
	if err != nil {
		t.Fatalf("RandomNonceHex: %v", err)
	}
	if len(nonce) != 32 {
		t.Fatalf("len(nonce) = %d, want 32", len(nonce))
	}
	other, err := RandomNonceHex(16)
	if err != nil {
		t.Fatalf("RandomNonceHex: %v", err)
	}
	if nonce == other {
		t.Fatalf("expected two independent nonces to differ")
	}
}
