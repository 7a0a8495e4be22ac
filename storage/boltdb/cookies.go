package boltdb

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/gradedesk/core"
)

var nowFunc = time.Now // mockable

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

func (sc storedCookie) expired(now time.Time) bool {
	return !sc.Expires.IsZero() && !sc.Expires.After(now)
}

func (sc storedCookie) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     sc.Name,
		Value:    sc.Value,
		Path:     sc.Path,
		Domain:   sc.Domain,
		Expires:  sc.Expires,
		Secure:   sc.Secure,
		HttpOnly: sc.HttpOnly,
	}
}

// CookieJar is an http.CookieJar that survives restarts: cookies are kept in
// a cookiejar.Jar and mirrored per origin into the state file.
// Cookies without an expiry are persisted too, so a login outlives the process.
type CookieJar struct {
	db     *bbolt.DB
	logger core.Logger

	mu  sync.Mutex
	jar *cookiejar.Jar
}

var _ http.CookieJar = (*CookieJar)(nil)

func NewCookieJar(db *bbolt.DB, logger core.Logger) (*CookieJar, error) {
	cj := &CookieJar{db: db, logger: logger}
	if err := cj.reload(); err != nil {
		return nil, err
	}
	return cj, nil
}

func (cj *CookieJar) reload() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return errors.Wrap(err, "creating cookie jar")
	}
	now := nowFunc()
	err = cj.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(cookieBucket)
		if b == nil {
			return errors.Errorf("bucket %s not found", cookieBucket)
		}
		return b.ForEach(func(k, v []byte) error {
			origin, err := url.Parse(string(k))
			if err != nil {
				return nil // skip garbage
			}
			var stored []storedCookie
			if err := json.Unmarshal(v, &stored); err != nil {
				return nil
			}
			cookies := make([]*http.Cookie, 0, len(stored))
			for _, sc := range stored {
				if !sc.expired(now) {
					cookies = append(cookies, sc.cookie())
				}
			}
			jar.SetCookies(origin, cookies)
			return nil
		})
	})
	if err != nil {
		return errors.Wrap(err, "loading cookies")
	}
	cj.jar = jar
	return nil
}

func (cj *CookieJar) Cookies(u *url.URL) []*http.Cookie {
	cj.mu.Lock()
	defer cj.mu.Unlock()
	return cj.jar.Cookies(u)
}

func (cj *CookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	cj.mu.Lock()
	defer cj.mu.Unlock()

	cj.jar.SetCookies(u, cookies)
	// the in-memory jar stays authoritative for this process
	if err := cj.persist(u, cookies); err != nil {
		cj.logger.Warn("persisting cookies: "+err.Error(), err)
	}
}

func (cj *CookieJar) persist(u *url.URL, cookies []*http.Cookie) error {
	key := []byte(u.Scheme + "://" + u.Host)
	now := nowFunc()

	return cj.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(cookieBucket)
		if b == nil {
			return errors.Errorf("bucket %s not found", cookieBucket)
		}
		var stored []storedCookie
		if v := b.Get(key); v != nil {
			_ = json.Unmarshal(v, &stored)
		}

		for _, c := range cookies {
			sc := storedCookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     c.Path,
				Domain:   c.Domain,
				Expires:  c.Expires,
				Secure:   c.Secure,
				HttpOnly: c.HttpOnly,
			}
			remove := c.MaxAge < 0
			if c.MaxAge > 0 {
				sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
			}
			if sc.expired(now) {
				remove = true
			}

			replaced := false
			for i := range stored {
				if stored[i].Name == sc.Name && stored[i].Path == sc.Path && stored[i].Domain == sc.Domain {
					stored[i] = sc
					replaced = true
					if remove {
						stored = append(stored[:i], stored[i+1:]...)
					}
					break
				}
			}
			if !replaced && !remove {
				stored = append(stored, sc)
			}
		}

		if len(stored) == 0 {
			return b.Delete(key)
		}
		blob, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		return b.Put(key, blob)
	})
}

// Clear forgets every cookie, in memory and on disk.
func (cj *CookieJar) Clear() error {
	cj.mu.Lock()
	defer cj.mu.Unlock()

	err := cj.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(cookieBucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(cookieBucket)
		return err
	})
	if err != nil {
		return errors.Wrap(err, "clearing cookies")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return errors.Wrap(err, "creating cookie jar")
	}
	cj.jar = jar
	return nil
}
