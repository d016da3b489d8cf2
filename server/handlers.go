package server

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gaurav-prasanna/link2itinerary/planner"
	"github.com/gaurav-prasanna/link2itinerary/trips"
)

const maxBodyBytes = 1 << 20

type urlPlannerRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type teaserRequest struct {
	TripID string `json:"tripId" validate:"required,uuid"`
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", nil)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.respondServiceError(w, err)
		return false
	}
	return true
}

func (s *Server) planFromURL(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req urlPlannerRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.writeResult(w, s.planner.PlanFromURL(r.Context(), req.URL))
}

func (s *Server) planTeaser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req teaserRequest
	if !s.decode(w, r, &req) {
		return
	}

	seed, err := s.trips.Get(r.Context(), req.TripID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	res := s.planner.PlanForTrip(r.Context(), seed)
	if res.Err() == nil && !res.Fallback {
		if _, err := s.trips.SetStatus(r.Context(), seed.ID, trips.StatusTeaserGenerated); err != nil {
			s.log.WithError(err).Warn("could not update trip status", map[string]interface{}{"tripId": seed.ID})
		}
	}
	s.writeResult(w, res)
}

func (s *Server) writeResult(w http.ResponseWriter, res planner.Result) {
	if res.Failure != nil && res.Failure.Surfaced() {
		s.respondFailure(w, res.Failure)
		return
	}
	if res.Fallback {
		w.Header().Set(FallbackHeader, "true")
	}
	writeJSON(w, http.StatusOK, res.Response)
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req trips.CreateRequest
	if !s.decode(w, r, &req) {
		return
	}
	seed, err := s.trips.Create(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, seed)
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	seeds, err := s.trips.List(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seeds)
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	seed, err := s.trips.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if _, err := s.trips.Get(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	var req trips.UpdateRequest
	if !s.decode(w, r, &req) {
		return
	}
	seed, err := s.trips.Update(r.Context(), id, req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := s.trips.Delete(r.Context(), ps.ByName("id")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
