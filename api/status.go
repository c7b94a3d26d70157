package api

import (
	"net/http"
	"time"
)

type statusResponse struct {
	Status   string `json:"status"`
	Payments int64  `json:"payments"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.Store.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:   "ok",
		Payments: count,
		Uptime:   time.Since(s.StartTime).Truncate(time.Second).String(),
		Version:  s.Version,
	})
}
