package sessions

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "gamectrl-session"

	userIDSessionKey = "userID"
)

type SessionStore interface {
	GetUserID(r *http.Request) uint
	SetUserID(w http.ResponseWriter, r *http.Request, userID uint) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) (*sessions.Session, error) {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("Error getting session: %v", err)
	}
	return session, nil
}

func (c *CookieSessionStore) GetUserID(r *http.Request) uint {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return 0
	}
	raw, ok := session.Values[userIDSessionKey].(string)
	if !ok {
		return 0
	}
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(userID)
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Values[userIDSessionKey] = strconv.FormatUint(uint64(userID), 10)
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
