// Package core implements the seven signed record types of the settlement
// protocol (MSR, AMR, FC, MBS, IAN, DBP, ACR) and the netting and
// default-resolution algorithms that operate over them. The package is a
// pure library: no threads, no I/O, no global mutable state beyond the
// injectable logger below. Every exported function is referentially
// transparent given its inputs and safe to call concurrently.
package core

import (
	"github.com/oerc-s/primordia/pkg/canonical"
	"github.com/oerc-s/primordia/pkg/pcrypto"
	"github.com/oerc-s/primordia/pkg/perrors"
	log "github.com/sirupsen/logrus"
)

// SupportedVersion is the wire version every record type currently emits
// and the only version verifiers accept.
const SupportedVersion = "0.1"

var logger = log.New()

// SetLogger overrides the package-level logger. MakeMSR logs each signed
// receipt at debug level; no other function in the package logs.
func SetLogger(l *log.Logger) { logger = l }

// contentHash canonicalizes v and returns its hex BLAKE3 digest. This is
// the "hash(canonical(map))" step every record construction and
// verification path shares (spec §4.3).
func contentHash(v canonical.Value) (string, error) {
	b, err := canonical.Encode(v)
	if err != nil {
		return "", perrors.Wrap(perrors.KindCanonical, err, "canonicalize content")
	}
	return pcrypto.Hash(b), nil
}

// signHash signs a hex digest with privHex, wrapping pcrypto errors in the
// protocol's error taxonomy.
func signHash(digestHex, privHex string) (string, error) {
	sig, err := pcrypto.Sign(digestHex, privHex)
	if err != nil {
		return "", perrors.Wrap(perrors.KindSignature, err, "sign record")
	}
	return sig, nil
}
