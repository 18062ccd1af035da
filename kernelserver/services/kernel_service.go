// Package services implements the kernel's in-memory settlement state: the
// epoch-keyed IAN store and the DBP store keyed by defaulting agent, plus the business
// logic the HTTP controllers call into.
package services

import (
	"sync"

	"github.com/oerc-s/primordia/core"
	"github.com/oerc-s/primordia/pkg/perrors"
	"github.com/oerc-s/primordia/pkg/utils"
)

// defaultMaxNetBatch bounds a single netting call's receipt count absent a
// PRIMORDIA_NET_MAX_BATCH override; it protects the in-memory IAN store from
// an unbounded single submission.
const defaultMaxNetBatch = 10000

// KernelService nets receipts into IANs, serves them back by epoch, and
// lets an arbiter declare defaults. It owns all kernel-side mutable state.
type KernelService struct {
	kernelPrivateKey string
	kernelPublicKey  string

	arbiterPrivateKey string
	arbiterAgentID    string
	maxNetBatch       int

	mu       sync.RWMutex
	ians     map[string]core.IAN
	defaults map[string]core.DBP
}

// NewKernelService constructs a service signing IANs with kernelPrivateKey
// (whose public counterpart is kernelPublicKey) and DBPs with
// arbiterPrivateKey (identified by arbiterAgentID). The maximum receipt
// count accepted by a single Net call is read from PRIMORDIA_NET_MAX_BATCH,
// falling back to defaultMaxNetBatch.
func NewKernelService(kernelPrivateKey, kernelPublicKey, arbiterPrivateKey, arbiterAgentID string) *KernelService {
	return &KernelService{
		kernelPrivateKey:   kernelPrivateKey,
		kernelPublicKey:    kernelPublicKey,
		arbiterPrivateKey:  arbiterPrivateKey,
		arbiterAgentID:     arbiterAgentID,
		maxNetBatch:        utils.EnvOrDefaultInt("PRIMORDIA_NET_MAX_BATCH", defaultMaxNetBatch),
		ians:               make(map[string]core.IAN),
		defaults:           make(map[string]core.DBP),
	}
}

// KernelPublicKey returns the kernel's signing public key, used by clients
// to verify returned IANs.
func (s *KernelService) KernelPublicKey() string { return s.kernelPublicKey }

// Net nets receipts for epochID, stores, and returns the resulting IAN.
// Receipts whose own MSR signature does not verify are rejected wholesale;
// the kernel never nets around a tampered receipt.
func (s *KernelService) Net(epochID string, receipts []core.MSR) (core.IAN, error) {
	if len(receipts) > s.maxNetBatch {
		return core.IAN{}, perrors.New(perrors.KindInvariant, "net: batch of %d receipts exceeds max of %d", len(receipts), s.maxNetBatch)
	}

	for _, r := range receipts {
		valid, _, err := core.VerifyMSR(r)
		if err != nil {
			return core.IAN{}, err
		}
		if !valid {
			return core.IAN{}, perrors.New(perrors.KindSignature, "receipt failed verification for payer %s", r.PayerAgentID)
		}
	}

	ian, err := core.MakeIAN(epochID, receipts, s.kernelPrivateKey)
	if err != nil {
		return core.IAN{}, err
	}

	s.mu.Lock()
	s.ians[epochID] = ian
	s.mu.Unlock()
	return ian, nil
}

// IANForEpoch returns the stored IAN for epochID, if any.
func (s *KernelService) IANForEpoch(epochID string) (core.IAN, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ian, ok := s.ians[epochID]
	return ian, ok
}

// DeclareDefault builds, signs (as the configured arbiter), and stores a DBP
// for defaultingAgentID.
func (s *KernelService) DeclareDefault(defaultingAgentID string, p core.MakeDBPParams) (core.DBP, error) {
	p.DefaultingAgentID = defaultingAgentID
	p.ArbiterAgentID = s.arbiterAgentID
	p.ArbiterPrivateKey = s.arbiterPrivateKey

	dbp, err := core.MakeDBP(p)
	if err != nil {
		return core.DBP{}, err
	}

	s.mu.Lock()
	s.defaults[defaultingAgentID] = dbp
	s.mu.Unlock()
	return dbp, nil
}

// DefaultForAgent returns the most recently declared DBP for agentID, if any.
func (s *KernelService) DefaultForAgent(agentID string) (core.DBP, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.defaults[agentID]
	return d, ok
}
