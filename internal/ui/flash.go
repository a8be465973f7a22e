package ui

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// Flash messages survive exactly one redirect: a mutation handler sets the
// cookie, the next page render consumes and clears it.

const flashCookieName = "clinic_flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

type flashMessage struct {
	Tone string
	Text string
}

func (h *Handler) setFlash(w http.ResponseWriter, tone, text string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(tone + "|" + text))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash reads and clears the pending flash, if any.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) *flashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	tone, text, ok := strings.Cut(string(raw), "|")
	if !ok || text == "" {
		return nil
	}
	return &flashMessage{Tone: tone, Text: text}
}
