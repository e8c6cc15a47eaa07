package domain

import "time"

// LocalUserID is the reserved id of the first-party user. The store
// guarantees a user with this id always exists.
const LocalUserID = "me"

// DefaultLocalUser returns the user created whenever no local user has
// been persisted yet.
func DefaultLocalUser() User {
	return User{ID: LocalUserID, DisplayName: "Trainee"}
}

// User is a member of the sandbox social graph.
type User struct {
	// ID is stable and unique. IDs like "u_1" are used for seeded users;
	// LocalUserID is reserved.
	ID string `json:"id"`

	// DisplayName is 1-40 characters.
	DisplayName string `json:"displayName"`

	// AvatarURL is optional.
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Post is a single timeline entry.
type Post struct {
	// ID has the form p_<n> with n strictly increasing across the
	// store's lifetime.
	ID string `json:"id"`

	// Author is a snapshot of the user at creation time; later profile
	// edits do not rewrite old posts.
	Author User `json:"author"`

	// Text is 1-140 characters after whitespace trimming.
	Text string `json:"text"`

	// ImageURL is optional.
	ImageURL string `json:"imageUrl,omitempty"`

	// LikeCount is never negative.
	LikeCount int `json:"likeCount"`

	// LikedByMe tracks the local user's like state.
	LikedByMe bool `json:"likedByMe"`

	// CreatedAt is the timeline sort key, encoded as RFC 3339 UTC.
	CreatedAt time.Time `json:"createdAt"`
}

// Page is one slice of the timeline, newest first. NextPage is null on
// the final page.
type Page struct {
	Items    []Post `json:"items"`
	NextPage *int   `json:"nextPage"`
}

// Snapshot is the complete persisted state, written as one unit. It is
// also the shape of seed documents.
type Snapshot struct {
	Users []User `json:"users"`
	Posts []Post `json:"posts"`
}
