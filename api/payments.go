package api

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ethpay/payqr/payment"
	"github.com/ethpay/payqr/store"
)

type createPaymentResponse struct {
	ID    int64  `json:"id"`
	URI   string `json:"uri"`
	Wei   string `json:"wei"`
	Ether string `json:"ether"`
	QRPNG string `json:"qr_png"`
}

// handleCreatePayment runs the full pipeline: validate form, convert the
// amount, build the URI, render the QR image, and only then commit a history
// row. A validation or render failure leaves the store untouched.
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var form payment.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := form.Validate()
	if err != nil {
		var verr *payment.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": verr.Reason,
				"field": verr.Field,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	png, err := s.Renderer.Render(req.URI)
	if err != nil {
		s.Log.Error("qr render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not render QR code, please try again")
		return
	}

	ether, err := payment.FromWei(req.Wei)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p := &store.Payment{
		Address:   req.Address,
		Wei:       req.Wei,
		Ether:     ether,
		Note:      req.Note,
		URI:       req.URI,
		CreatedAt: time.Now().Unix(),
	}
	id, err := s.Store.Save(p)
	if err != nil {
		s.Log.Error("save payment failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save payment")
		return
	}

	s.Log.Info("payment request generated", "id", id, "address", req.Address, "wei", req.Wei)

	writeJSON(w, http.StatusOK, createPaymentResponse{
		ID:    id,
		URI:   req.URI,
		Wei:   req.Wei,
		Ether: ether,
		QRPNG: base64.StdEncoding.EncodeToString(png),
	})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	payments, err := s.Store.List(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if payments == nil {
		payments = []store.Payment{}
	}

	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleSearchPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	limit := queryInt(r, "limit", 20)

	payments, err := s.Store.Search(q, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if payments == nil {
		payments = []store.Payment{}
	}

	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := s.paymentFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleGetPaymentPNG re-renders the stored URI and serves it as a PNG
// download. The image is derived state, so it is never persisted.
func (s *Server) handleGetPaymentPNG(w http.ResponseWriter, r *http.Request) {
	p, ok := s.paymentFromURL(w, r)
	if !ok {
		return
	}

	png, err := s.Renderer.Render(p.URI)
	if err != nil {
		s.Log.Error("qr render failed", "error", err, "id", p.ID)
		writeError(w, http.StatusInternalServerError, "could not render QR code, please try again")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payment-%d.png", p.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) paymentFromURL(w http.ResponseWriter, r *http.Request) (*store.Payment, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return nil, false
	}

	p, err := s.Store.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "payment not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return p, true
}
