package api

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const flashSessionName = "intake_session"

// Flash is a one-shot message carried across a redirect in the session cookie.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// FlashStore holds user-visible messages in a signed cookie so redirect URLs
// stay free of anything but the preserved campaign parameters.
type FlashStore struct {
	store *sessions.CookieStore
}

func NewFlashStore(secret string) *FlashStore {
	s := sessions.NewCookieStore([]byte(secret))
	s.Options.HttpOnly = true
	s.Options.SameSite = http.SameSiteLaxMode
	// the store defaults to Secure cookies, which never come back over the
	// plain-HTTP listener; TLS termination happens upstream
	s.Options.Secure = false
	return &FlashStore{store: s}
}

// Add queues a flash message for the next rendered page.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, category, message string) {
	session, _ := f.store.Get(r, flashSessionName)
	session.AddFlash(Flash{Category: category, Message: message})
	if err := session.Save(r, w); err != nil {
		logger.Error("flash save failed", "err", err)
	}
}

// Pop returns and clears any queued flash messages.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	session, _ := f.store.Get(r, flashSessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		if err := session.Save(r, w); err != nil {
			logger.Error("flash save failed", "err", err)
		}
	}

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if fl, ok := v.(Flash); ok {
			out = append(out, fl)
		}
	}

	return out
}
