// Package snapshot owns the canonical in-memory collections of users and
// posts and persists them as a single JSON document after every mutation.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/feedlab/snsbox/internal/domain"
)

// Store holds users and posts behind a single mutex. Every exported
// method holds the lock for its full duration, reads included, so no two
// operations ever interleave. Mutations persist the full snapshot before
// returning; a failed write is logged and the in-memory state stays
// authoritative.
type Store struct {
	mu        sync.Mutex
	users     []domain.User
	posts     []domain.Post
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
}

// NewStore creates a store over the given persister. Call Load before
// serving requests.
func NewStore(persister Persister, logger *slog.Logger) *Store {
	return &Store{
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}
}

// Load replaces in-memory state with the persisted snapshot. When no
// snapshot exists yet, the store initializes itself with the default
// local user and persists immediately. A corrupt snapshot is logged and
// the store falls back to that same default state without overwriting
// the stored document.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.persister.Load()
	switch {
	case err == nil:
		s.users = append([]domain.User(nil), snap.Users...)
		s.posts = append([]domain.Post(nil), snap.Posts...)
	case errors.Is(err, fs.ErrNotExist):
		s.users = []domain.User{domain.DefaultLocalUser()}
		s.posts = nil
		s.saveLocked()
	default:
		s.logger.Error("snapshot load failed, starting from defaults", "error", err)
		s.users = []domain.User{domain.DefaultLocalUser()}
		s.posts = nil
	}
}

// Save persists the current snapshot. Mutations already persist on their
// own; this exists for the graceful-shutdown flush.
func (s *Store) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked()
}

// Reset discards all posts and returns users to the single default local
// user.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []domain.User{domain.DefaultLocalUser()}
	s.posts = nil
	s.saveLocked()
}

// Seed replaces state with the {users, posts} JSON document at path. On
// a read or decode error the in-memory state is left untouched. The
// local user is inserted at the head when the seed does not carry one;
// a seeded local identity is preserved otherwise. Posts are reordered
// newest first.
func (s *Store) Seed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append([]domain.User(nil), snap.Users...)
	hasLocal := false
	for _, u := range s.users {
		if u.ID == domain.LocalUserID {
			hasLocal = true
			break
		}
	}
	if !hasLocal {
		s.users = append([]domain.User{domain.DefaultLocalUser()}, s.users...)
	}

	s.posts = append([]domain.Post(nil), snap.Posts...)
	sortPostsDesc(s.posts)
	s.saveLocked()
	return nil
}

// FindUser returns the user with the given id, or ErrNotFound.
func (s *Store) FindUser(id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

// UpsertUser replaces the user with the same id or appends a new one.
func (s *Store) UpsertUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = user
			s.saveLocked()
			return
		}
	}
	s.users = append(s.users, user)
	s.saveLocked()
}

// AddPost creates a post at the head of the timeline and returns it. The
// id continues from the highest p_<n> suffix currently present.
func (s *Store) AddPost(author domain.User, text, imageURL string) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := domain.Post{
		ID:        s.nextPostIDLocked(),
		Author:    author,
		Text:      text,
		ImageURL:  imageURL,
		CreatedAt: s.now().UTC(),
	}
	s.posts = append([]domain.Post{post}, s.posts...)
	s.saveLocked()
	return post
}

// ToggleLike flips the local user's like on the post and adjusts the
// count, clamped at zero. Returns ErrNotFound for an unknown id.
func (s *Store) ToggleLike(postID string) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		p := &s.posts[i]
		if p.LikedByMe {
			p.LikedByMe = false
			if p.LikeCount > 0 {
				p.LikeCount--
			}
		} else {
			p.LikedByMe = true
			p.LikeCount++
		}
		s.saveLocked()
		return *p, nil
	}
	return domain.Post{}, domain.ErrNotFound
}

// GetPage returns one newest-first slice of the timeline. The ordering
// is derived fresh on every call rather than cached. Pages below 1 are
// treated as page 1; pages past the end yield an empty slice with a null
// next page.
func (s *Store) GetPage(page, pageSize int) domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}

	sorted := append([]domain.Post(nil), s.posts...)
	sortPostsDesc(sorted)

	start := (page - 1) * pageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}

	items := sorted[start:end]
	if items == nil {
		items = []domain.Post{}
	}

	result := domain.Page{Items: items}
	if end < len(sorted) {
		next := page + 1
		result.NextPage = &next
	}
	return result
}

// saveLocked persists the current state. Callers must hold s.mu. The
// slices are copied so the persister never aliases live state.
func (s *Store) saveLocked() {
	snap := &domain.Snapshot{
		Users: append([]domain.User(nil), s.users...),
		Posts: append([]domain.Post(nil), s.posts...),
	}
	if err := s.persister.Save(snap); err != nil {
		s.logger.Error("snapshot save failed", "error", err)
	}
}

// nextPostIDLocked derives the next id from the highest p_<n> suffix in
// the current posts, so the sequence resumes correctly after a reseed.
func (s *Store) nextPostIDLocked() string {
	highest := 0
	for _, p := range s.posts {
		suffix, ok := strings.CutPrefix(p.ID, "p_")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n <= highest {
			continue
		}
		highest = n
	}
	return "p_" + strconv.Itoa(highest+1)
}

func sortPostsDesc(posts []domain.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
