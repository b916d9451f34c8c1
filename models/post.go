package models

import "time"

// Author is the authorship snapshot embedded in a post. It is captured at
// creation time and never re-resolved against live user records, so a later
// username change does not rewrite existing bylines.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Post is a Markdown-authored article. Posts are persisted wholesale as part
// of the posts collection, newest first.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    Author    `json:"author"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
