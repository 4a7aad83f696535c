package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/handlers"
	mw "vivekananda.org/vivek-web/internal/middleware"
	"vivekananda.org/vivek-web/internal/observability"
	"vivekananda.org/vivek-web/internal/relay"
)

// contactHandler relays the contact form. htmx requests get the form fragment with
// the outcome; plain posts get the whole home page.
func (a *app) contactHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	msg := relay.Message{
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Email:   strings.TrimSpace(r.PostForm.Get("email")),
		Subject: strings.TrimSpace(r.PostForm.Get("subject")),
		Body:    strings.TrimSpace(r.PostForm.Get("message")),
	}

	receipt, err := a.relay.Send(r.Context(), msg)
	status := http.StatusOK
	switch {
	case err == nil:
		logger.Info("contact message relayed", zap.String("receipt", receipt.ID.String()), zap.Int("status", receipt.Status))
	case errors.Is(err, relay.ErrInvalidMessage):
		logger.Info("contact message rejected", zap.Error(err))
		status = http.StatusUnprocessableEntity
	default:
		logger.Error("contact relay failed", zap.Error(err))
		status = http.StatusBadGateway
	}
	outcome := relay.OutcomeFor(msg.Clean(), err)

	if !mw.IsHTMX(r.Context()) {
		a.serveHome(w, r, &outcome, status)
		return
	}
	data := handlers.NewContactData(mw.Lang(r), mw.CSRFToken(r.Context()), &outcome)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	// htmx only swaps successful responses; the outcome carries the failure.
	w.WriteHeader(http.StatusOK)
	if err := a.tmpl.Execute(w, "contact_result", data); err != nil {
		logger.Error("render contact result", zap.Error(err))
	}
}
