package flash

import (
	"time"

	"github.com/geocoder89/bankportal/internal/cache"
)

// Message is the banner shown above a dashboard after a mutation.
type Message struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

func Success(text string) Message { return Message{Text: text, OK: true} }
func Failure(text string) Message { return Message{Text: text, OK: false} }

// Store keeps at most one banner per session handle. A banner stays visible
// on every view until its ttl runs out; reading it does not consume it.
type Store struct {
	c *cache.Cache[Message]
}

func New(ttl time.Duration) *Store {
	return &Store{c: cache.New[Message](ttl)}
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.c.WithClock(now)
	return s
}

func (s *Store) Set(handle string, m Message) {
	if handle == "" || m.Text == "" {
		return
	}
	s.c.Set(handle, m)
}

func (s *Store) Get(handle string) *Message {
	if handle == "" {
		return nil
	}
	m, ok := s.c.Get(handle)
	if !ok {
		return nil
	}
	return &m
}

// Dismiss drops the banner before it expires. Logout uses it so a banner
// never outlives the session that caused it.
func (s *Store) Dismiss(handle string) {
	s.c.Delete(handle)
}

// Sweep drops expired banners of browsers that never came back.
func (s *Store) Sweep() int {
	return s.c.Sweep()
}
