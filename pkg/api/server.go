// Package api exposes the prediction engine over HTTP. The routes mirror the
// service's REST surface: prediction requests, prediction history, and the
// team/match records that feed the model.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/footballmoneyball/moneyball/internal/logger"
	"github.com/footballmoneyball/moneyball/pkg/predict"
)

// Server routes HTTP requests to the predictor and the store.
type Server struct {
	store     *predict.Store
	predictor *predict.Predictor
	router    *mux.Router
}

func NewServer(store *predict.Store, predictor *predict.Predictor) *Server {
	s := &Server{
		store:     store,
		predictor: predictor,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/predictions/predict", s.handlePredict).Methods(http.MethodPost)
	r.HandleFunc("/api/predictions/recent", s.handleRecentPredictions).Methods(http.MethodGet)
	r.HandleFunc("/api/predictions/{id}", s.handlePredictionByID).Methods(http.MethodGet)
	r.HandleFunc("/api/predictions", s.handleListPredictions).Methods(http.MethodGet)

	r.HandleFunc("/api/teams", s.handleListTeams).Methods(http.MethodGet)
	r.HandleFunc("/api/teams", s.handleCreateTeam).Methods(http.MethodPost)
	r.HandleFunc("/api/teams/{id}", s.handleTeamByID).Methods(http.MethodGet)

	r.HandleFunc("/api/matches", s.handleListMatches).Methods(http.MethodGet)
	r.HandleFunc("/api/matches", s.handleCreateMatch).Methods(http.MethodPost)
}

// ServeHTTP makes the server usable directly with httptest and http.Server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	logger.Info("HTTP server listening on", addr)
	return http.ListenAndServe(addr, s.router)
}

/////////////////////////////////////////////////////////////////////////
////// Handlers
/////////////////////////////////////////////////////////////////////////

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predict.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HomeTeamID == "" || req.AwayTeamID == "" {
		writeError(w, http.StatusBadRequest, "homeTeamId and awayTeamId are required")
		return
	}

	logger.Info("Prediction request:", req.HomeTeamID, "vs", req.AwayTeamID)

	result, err := s.predictor.Predict(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, predict.ErrTeamNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, predict.ErrInvalidModelInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			logger.Error("Prediction failed", err)
			writeError(w, http.StatusInternalServerError, "prediction failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	predictions, err := s.store.Predictions()
	if err != nil {
		logger.Error("Failed to list predictions", err)
		writeError(w, http.StatusInternalServerError, "failed to list predictions")
		return
	}
	writeJSON(w, http.StatusOK, predictions)
}

func (s *Server) handleRecentPredictions(w http.ResponseWriter, r *http.Request) {
	predictions, err := s.store.RecentPredictions()
	if err != nil {
		logger.Error("Failed to list recent predictions", err)
		writeError(w, http.StatusInternalServerError, "failed to list predictions")
		return
	}
	writeJSON(w, http.StatusOK, predictions)
}

func (s *Server) handlePredictionByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	prediction, err := s.store.PredictionByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.store.Teams()
	if err != nil {
		logger.Error("Failed to list teams", err)
		writeError(w, http.StatusInternalServerError, "failed to list teams")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	// Start from the sentinel-seeded team so averages absent from the body
	// stay unknown instead of reading as 0.0
	team := predict.NewTeam()
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.SaveTeam(&team); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, &team)
}

func (s *Server) handleTeamByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	team, err := s.store.GetTeam(r.Context(), id)
	if err != nil {
		if errors.Is(err, predict.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load team")
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.store.Matches()
	if err != nil {
		logger.Error("Failed to list matches", err)
		writeError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	// Start from the sentinel-seeded record so scores absent from the body
	// stay unknown instead of reading as a finished 0-0 draw
	match := predict.NewMatchRecord()
	if err := json.NewDecoder(r.Body).Decode(&match); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.SaveMatch(&match); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, &match)
}

/////////////////////////////////////////////////////////////////////////
////// Response helpers
/////////////////////////////////////////////////////////////////////////

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
