// Package controllers holds the HTTP handlers for the kernel server.
package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/oerc-s/primordia/core"
	ks "github.com/oerc-s/primordia/kernelserver"
	"github.com/oerc-s/primordia/kernelserver/services"
)

// NetController serves the settlement-kernel endpoints (netting, epoch
// lookup). Registered on a chi router.
type NetController struct {
	svc *services.KernelService
}

func NewNetController(svc *services.KernelService) *NetController {
	return &NetController{svc: svc}
}

// Net handles POST /v1/net: nets a batch of receipts into a signed IAN.
func (c *NetController) Net(w http.ResponseWriter, r *http.Request) {
	var req ks.NetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipts := make([]core.MSR, len(req.Payload.Receipts))
	for i, rw := range req.Payload.Receipts {
		receipts[i] = rw.ToCore()
	}

	ian, err := c.svc.Net(req.Payload.EpochID, receipts)
	if err != nil {
		log.WithError(err).Warn("net: rejected")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ks.FromCoreIAN(ian))
}

// IAN handles GET /v1/ian/{epoch}: returns a previously computed IAN.
func (c *NetController) IAN(w http.ResponseWriter, r *http.Request) {
	epoch := chi.URLParam(r, "epoch")
	ian, ok := c.svc.IANForEpoch(epoch)
	if !ok {
		http.Error(w, "no ian for epoch", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ks.FromCoreIAN(ian))
}

// Healthz handles GET /healthz.
func (c *NetController) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
