// Package routes wires the kernel server's controllers onto their routers:
// chi for the settlement endpoints, a gorilla/mux sub-router mounted
// beneath it for the arbiter's default endpoint.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"

	"github.com/oerc-s/primordia/kernelserver/controllers"
	"github.com/oerc-s/primordia/kernelserver/middleware"
)

// Register builds the full kernel server handler.
func Register(nc *controllers.NetController, dc *controllers.DefaultController) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.MaxBodyBytes)

	r.Get("/healthz", nc.Healthz)
	r.Post("/v1/net", nc.Net)
	r.Get("/v1/ian/{epoch}", nc.IAN)

	arbiter := mux.NewRouter()
	arbiter.HandleFunc("/{agent}", dc.Trigger).Methods(http.MethodPost)
	arbiter.HandleFunc("/{agent}", dc.Get).Methods(http.MethodGet)
	// chi's Mount leaves r.URL.Path untouched and mux matches on it, so the
	// prefix is stripped for the sub-router's /{agent} routes to match.
	r.Mount("/v1/default", http.StripPrefix("/v1/default", arbiter))

	return r
}
