package models

import "time"

// Comment is a reply to a post. The structure is a fixed two-tier tree:
// top-level comments carry zero or more replies, and a reply never carries
// replies of its own. Comments are immutable once created and keep their
// insertion order.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Replies   []Comment `json:"replies,omitempty"`
}
