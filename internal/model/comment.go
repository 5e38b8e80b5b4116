package model

import "time"

// Comment is a remark left on a listing, mirroring the `comments`
// table.  Comments are immutable after creation.
//
// Fields:
//  ID        – primary key identifier.
//  ListingID – listing the comment belongs to.
//  AuthorID  – user who wrote the comment.
//  Content   – comment body.
//  CreatedAt – creation timestamp (immutable).
type Comment struct {
	ID        uint64    // comments.id
	ListingID uint64    // comments.listing_id
	AuthorID  uint64    // comments.author_id
	Content   string    // comments.content
	CreatedAt time.Time // comments.created_at
}
