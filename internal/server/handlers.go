package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/logger"
)

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Welcome to the Invoice Maker!"

// failurePrefix starts every conversion failure body.
const failurePrefix = "Failed to create invoice: "

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	respondText(w, http.StatusOK, WelcomeMessage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"engine":  s.cfg.Converter.Engine,
		"workers": s.pool.Size(),
	})
}

// handleCreateInvoice decodes an invoice, converts it while holding a pool
// slot and streams the PDF back.
func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.WithContext(ctx, s.logger)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	var inv invoice2pdf.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondText(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		respondText(w, http.StatusBadRequest, "invalid invoice JSON: "+err.Error())
		return
	}

	conv, err := s.pool.Acquire(ctx)
	if err != nil {
		log.Warn("no converter available", "error", err)
		respondText(w, http.StatusServiceUnavailable, failurePrefix+"no converter available")
		return
	}
	defer s.pool.Release(conv)

	result, err := conv.Convert(ctx, inv)
	if err != nil {
		log.Error("invoice conversion failed", "invoice_number", inv.InvoiceNumber, "error", err)
		respondText(w, http.StatusInternalServerError, failurePrefix+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", pdfFilename(inv.InvoiceNumber)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PDF); err != nil {
		log.Warn("writing PDF response failed", "error", err)
	}
}

// pdfFilename builds "invoice-<number>.pdf", keeping only characters safe
// in a header parameter.
func pdfFilename(number string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(number))

	if safe == "" {
		return "invoice.pdf"
	}
	return "invoice-" + safe + ".pdf"
}

func respondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
