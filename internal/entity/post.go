package entity

import (
	"strings"
	"time"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  FileType  `json:"file_type"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPost is a post as it appears in the global feed, annotated for the
// requesting caller.
type FeedPost struct {
	Post
	IsOwner    bool   `json:"is_owner"`
	OwnerEmail string `json:"owner_email"`
}

// FileTypeFromContentType classifies an upload from its declared MIME type.
// The classification happens once, at creation time, and is never revised.
func FileTypeFromContentType(contentType string) (FileType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return FileTypeImage, true
	case strings.HasPrefix(contentType, "video/"):
		return FileTypeVideo, true
	default:
		return "", false
	}
}
