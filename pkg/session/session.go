package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

type Store struct {
	name  string
	store sessions.Store
}

func NewCookieStore(name string, keypairs ...[]byte) *Store {
	cookieStore := sessions.NewCookieStore(keypairs...)
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	return &Store{
		name:  name,
		store: cookieStore,
	}
}

func (s *Store) Get(r *http.Request) (*sessions.Session, error) {
	return s.store.Get(r, s.name)
}

func (s *Store) Save(r *http.Request, w http.ResponseWriter, a *sessions.Session) error {
	return s.store.Save(r, w, a)
}

// Destroy expires the session cookie on the client.
func (s *Store) Destroy(r *http.Request, w http.ResponseWriter) error {
	// A broken cookie still yields a fresh session which can be expired.
	sess, err := s.store.Get(r, s.name)
	if sess == nil {
		return err
	}

	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return s.store.Save(r, w, sess)
}
