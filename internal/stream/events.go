package stream

import (
	"time"

	"github.com/uzak0209/echo/internal/model"
)

type PostEventType string

const (
	EventNewPost             PostEventType = "new_post"
	EventDisplayCountUpdated PostEventType = "display_count_updated"
	EventPostRemoved         PostEventType = "post_removed"
)

// PostEvent is one message on the global post stream, discriminated by Type.
// Events are transient: they exist only between publish and delivery.
type PostEvent struct {
	Type         PostEventType `json:"type"`
	PostID       string        `json:"post_id"`
	UserID       string        `json:"user_id,omitempty"`
	Content      string        `json:"content,omitempty"`
	ImageURL     *string       `json:"image_url,omitempty"`
	DisplayCount int           `json:"display_count"`
	CreatedAt    int64         `json:"created_at,omitempty"`
	AuthorName   string        `json:"author_name,omitempty"`
	AuthorAvatar string        `json:"author_avatar,omitempty"`
}

func NewPostEvent(post model.Post, author model.User) PostEvent {
	return PostEvent{
		Type:         EventNewPost,
		PostID:       post.ID,
		UserID:       post.UserID,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		DisplayCount: post.ViewCount,
		CreatedAt:    post.CreatedAt.Unix(),
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.AvatarURL,
	}
}

func DisplayCountUpdated(postID string, displayCount int) PostEvent {
	return PostEvent{Type: EventDisplayCountUpdated, PostID: postID, DisplayCount: displayCount}
}

func PostRemoved(postID string) PostEvent {
	return PostEvent{Type: EventPostRemoved, PostID: postID}
}

// ReactionEvent is one message on a post owner's reaction stream.
type ReactionEvent struct {
	PostID                  string             `json:"post_id"`
	ReactorUserID           string             `json:"reactor_user_id"`
	ReactionType            model.ReactionKind `json:"reaction_type"`
	Timestamp               int64              `json:"timestamp"`
	LatestReactionForAuthor model.ReactionKind `json:"latest_reaction_for_author"`
}

func NewReactionEvent(postID, reactorUserID string, kind model.ReactionKind) ReactionEvent {
	return ReactionEvent{
		PostID:                  postID,
		ReactorUserID:           reactorUserID,
		ReactionType:            kind,
		Timestamp:               time.Now().Unix(),
		LatestReactionForAuthor: kind,
	}
}
