package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Field names shared with the browser widget's snapshot format.
const (
	FieldLogin           = "login"
	FieldLastRequestTime = "lastRequestTime"
)

// ErrMissingLogin is returned when a record has no identifying handle.
var ErrMissingLogin = errors.New("record has no login")

// Record is a cached profile entry keyed by its login handle.
type Record struct {
	Login         string
	Profile       map[string]any
	LastFetchedAt time.Time
}

// Key returns the identifying key of the record.
func (r *Record) Key() string {
	return r.Login
}

// Age returns how long ago the record was last fetched.
func (r *Record) Age(now time.Time) time.Duration {
	return now.Sub(r.LastFetchedAt)
}

// Name returns the display name, if the profile carries one.
func (r *Record) Name() string { return r.stringField("name") }

// AvatarURL returns the avatar image URL.
func (r *Record) AvatarURL() string { return r.stringField("avatar_url") }

// Bio returns the profile bio.
func (r *Record) Bio() string { return r.stringField("bio") }

// Blog returns the profile blog link.
func (r *Record) Blog() string { return r.stringField("blog") }

func (r *Record) stringField(name string) string {
	if r.Profile == nil {
		return ""
	}
	s, _ := r.Profile[name].(string)
	return s
}

// Clone returns a copy of the record with its own profile map.
func (r *Record) Clone() *Record {
	c := &Record{Login: r.Login, LastFetchedAt: r.LastFetchedAt}
	if r.Profile != nil {
		c.Profile = make(map[string]any, len(r.Profile))
		for k, v := range r.Profile {
			c.Profile[k] = v
		}
	}
	return c
}

// MarshalJSON flattens the profile fields, login and lastRequestTime
// (epoch milliseconds) into one object.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Profile)+2)
	for k, v := range r.Profile {
		out[k] = v
	}
	out[FieldLogin] = r.Login
	if r.LastFetchedAt.IsZero() {
		delete(out, FieldLastRequestTime)
	} else {
		out[FieldLastRequestTime] = r.LastFetchedAt.UnixMilli()
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat object written by MarshalJSON.
// Numbers are kept as json.Number so unknown fields survive a round trip.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	if fields == nil {
		return ErrMissingLogin
	}

	login, _ := fields[FieldLogin].(string)
	if login == "" {
		return ErrMissingLogin
	}
	delete(fields, FieldLogin)

	var fetchedAt time.Time
	if raw, ok := fields[FieldLastRequestTime]; ok {
		n, ok := raw.(json.Number)
		if !ok {
			return fmt.Errorf("invalid %s for %s", FieldLastRequestTime, login)
		}
		ms, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return fmt.Errorf("invalid %s for %s: %w", FieldLastRequestTime, login, err)
			}
			ms = int64(f)
		}
		fetchedAt = time.UnixMilli(ms)
		delete(fields, FieldLastRequestTime)
	}

	r.Login = login
	r.Profile = fields
	r.LastFetchedAt = fetchedAt
	return nil
}
