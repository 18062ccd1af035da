package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/oerc-s/primordia/core"
	ks "github.com/oerc-s/primordia/kernelserver"
	"github.com/oerc-s/primordia/kernelserver/services"
)

// DefaultController serves the arbiter's default/bankruptcy endpoint.
// Registered on a gorilla/mux sub-router mounted under the chi root.
type DefaultController struct {
	svc *services.KernelService
}

func NewDefaultController(svc *services.KernelService) *DefaultController {
	return &DefaultController{svc: svc}
}

// Trigger handles POST /v1/default/{agent}: declares a default for agent.
func (c *DefaultController) Trigger(w http.ResponseWriter, r *http.Request) {
	agent := mux.Vars(r)["agent"]

	var req ks.DefaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	creditors := make([]core.Creditor, len(req.Creditors))
	for i, cw := range req.Creditors {
		creditors[i] = core.Creditor{
			AgentID:        cw.AgentID,
			AmountMicros:   cw.AmountMicros,
			Priority:       cw.Priority,
			Collateralized: cw.Collateralized,
		}
	}
	assets := make([]core.DBPAsset, len(req.Assets))
	for i, aw := range req.Assets {
		assets[i] = core.DBPAsset{AssetType: aw.AssetType, ValueMicros: aw.ValueMicros, Liquid: aw.Liquid}
	}

	dbp, err := c.svc.DeclareDefault(agent, core.MakeDBPParams{
		DeclarationType:    req.DeclarationType,
		TriggerType:        req.TriggerType,
		TriggerReferenceID: req.TriggerReferenceID,
		Creditors:          creditors,
		Assets:             assets,
		LiquidationMethod:  req.LiquidationMethod,
	})
	if err != nil {
		log.WithError(err).Warn("default: rejected")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ks.FromCoreDBP(dbp))
}

// Get handles GET /v1/default/{agent}: returns the last declared default.
func (c *DefaultController) Get(w http.ResponseWriter, r *http.Request) {
	agent := mux.Vars(r)["agent"]
	dbp, ok := c.svc.DefaultForAgent(agent)
	if !ok {
		http.Error(w, "no default on record", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ks.FromCoreDBP(dbp))
}
