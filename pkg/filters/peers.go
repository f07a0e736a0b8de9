package filters

import (
	"context"
	"strings"
	"sync"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

// PeerSet is a mutable, concurrency-safe set of chat or user
// identities. Membership can be changed at runtime while the filter
// built on it keeps being evaluated. Usernames are stored without the
// @ prefix and compared case-insensitively.
type PeerSet struct {
	mu        sync.RWMutex
	ids       map[int64]struct{}
	usernames map[string]struct{}
}

func NewPeerSet(ids ...int64) *PeerSet {
	s := &PeerSet{
		ids:       make(map[int64]struct{}),
		usernames: make(map[string]struct{}),
	}
	s.Add(ids...)
	return s
}

func (s *PeerSet) Add(ids ...int64) *PeerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *PeerSet) AddUsername(names ...string) *PeerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.usernames[normalizeUsername(name)] = struct{}{}
	}
	return s
}

func (s *PeerSet) Remove(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.ids, id)
	}
}

func (s *PeerSet) RemoveUsername(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		delete(s.usernames, normalizeUsername(name))
	}
}

func (s *PeerSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids) + len(s.usernames)
}

func (s *PeerSet) contains(id int64, username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.ids[id]; ok {
		return true
	}
	if username == "" {
		return false
	}
	_, ok := s.usernames[username]
	return ok
}

func normalizeUsername(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "@"))
}

// Chat matches updates originating in one of the given chats.
func Chat(ids ...int64) Filter {
	return ChatIn(NewPeerSet(ids...))
}

// ChatUsername matches updates from chats with one of the given public
// usernames.
func ChatUsername(names ...string) Filter {
	return ChatIn(NewPeerSet().AddUsername(names...))
}

// ChatIn matches updates from chats in set. The set may be mutated
// while in use.
func ChatIn(set *PeerSet) Filter {
	return New("chat", func(_ context.Context, e *domain.Event) (bool, error) {
		chat := e.Chat()
		if chat == nil {
			return false, nil
		}
		return set.contains(chat.ID, e.ChatUsername()), nil
	})
}

// User matches updates sent by one of the given users.
func User(ids ...int64) Filter {
	return UserIn(NewPeerSet(ids...))
}

// UserUsername matches updates sent by users with one of the given
// usernames.
func UserUsername(names ...string) Filter {
	return UserIn(NewPeerSet().AddUsername(names...))
}

// UserIn matches updates from senders in set. The set may be mutated
// while in use.
func UserIn(set *PeerSet) Filter {
	return New("user", func(_ context.Context, e *domain.Event) (bool, error) {
		from := e.Sender()
		if from == nil {
			return false, nil
		}
		return set.contains(from.ID, e.SenderUsername()), nil
	})
}
