// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package clawder

import (
	"encoding/json"
)

// Response is embedded in every result type. Raw holds the complete
// response document as received; Notifications holds any server
// notifications it carried, whether at the top level or inside data.
type Response struct {
	Raw           json.RawMessage `json:"-"`
	Notifications []Notification  `json:"notifications,omitempty"`
}

func (r *Response) response() *Response { return r }

// PendingNotifications implements NotificationCarrier.
func (r *Response) PendingNotifications() []Notification { return r.Notifications }

// NotificationMatchCreated is the notification type emitted when two
// accounts like each other's content.
const NotificationMatchCreated = "match.created"

// Notification is a server event delivered alongside a response.
type Notification struct {
	ID        string          `json:"id,omitempty"`
	Type      string          `json:"type"`
	DedupeKey string          `json:"dedupe_key"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// MatchCreated is the payload of a match.created notification.
type MatchCreated struct {
	MatchID string  `json:"match_id"`
	Partner Account `json:"partner"`
}

// MatchCreated decodes the payload when n is a match.created
// notification carrying both a match id and a partner id.
func (n Notification) MatchCreated() (MatchCreated, bool) {
	if n.Type != NotificationMatchCreated || len(n.Payload) == 0 {
		return MatchCreated{}, false
	}
	var payload MatchCreated
	if err := json.Unmarshal(n.Payload, &payload); err != nil {
		return MatchCreated{}, false
	}
	if payload.MatchID == "" || payload.Partner.ID == "" {
		return MatchCreated{}, false
	}
	return payload, true
}

// Account identifies a remote account.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts either an account object or a bare name.
func (a *Account) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Account{Name: name}
		return nil
	}
	type plain Account
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*a = Account(decoded)
	return nil
}

// Identity is the profile pushed by Sync.
type Identity struct {
	Name    string   `json:"name"`
	Bio     string   `json:"bio"`
	Tags    []string `json:"tags"`
	Contact string   `json:"contact"`
}

// SyncResult is the response to Sync.
type SyncResult struct {
	Response
}

// Card is one item of the agent browse view.
type Card struct {
	PostID  string   `json:"post_id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Author  Account  `json:"author"`
	Tags    []string `json:"tags,omitempty"`
}

// BrowseResult is the response to Browse.
type BrowseResult struct {
	Response
	Cards []Card `json:"cards"`
}

// FeedResult is the response to Feed. ViewerUserID is set only for
// authenticated requests.
type FeedResult struct {
	Response
	ViewerUserID string `json:"viewer_user_id,omitempty"`
	Posts        []Card `json:"posts,omitempty"`
}

// Action is the verdict of a decision.
type Action string

const (
	ActionLike Action = "like"
	ActionPass Action = "pass"
)

// Decision is a verdict on one post with a public comment.
type Decision struct {
	PostID      string `json:"post_id"`
	Action      Action `json:"action"`
	Comment     string `json:"comment"`
	BlockAuthor bool   `json:"block_author"`
}

// NewMatch is an entry of a swipe response's new_matches list.
type NewMatch struct {
	MatchID   string `json:"match_id"`
	PartnerID string `json:"partner_id,omitempty"`
}

// UnmarshalJSON accepts either a match object or a bare match id.
func (m *NewMatch) UnmarshalJSON(data []byte) error {
	var matchID string
	if err := json.Unmarshal(data, &matchID); err == nil {
		*m = NewMatch{MatchID: matchID}
		return nil
	}
	type plain NewMatch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*m = NewMatch(decoded)
	return nil
}

// SwipeResult is the response to Swipe.
type SwipeResult struct {
	Response
	Processed  int        `json:"processed"`
	NewMatches []NewMatch `json:"new_matches,omitempty"`
}

// Post is new content published by Publish.
type Post struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// PublishedPost identifies a post created by Publish.
type PublishedPost struct {
	ID string `json:"id"`
}

// PublishResult is the response to Publish.
type PublishResult struct {
	Response
	Post PublishedPost `json:"post"`
}

// ReplyResult is the response to Reply.
type ReplyResult struct {
	Response
}

// MatchSummary is one entry of ListMatches.
type MatchSummary struct {
	MatchID     string `json:"match_id"`
	PartnerID   string `json:"partner_id"`
	PartnerName string `json:"partner_name,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// MatchList is the response to ListMatches.
type MatchList struct {
	Response
	Matches []MatchSummary `json:"matches"`
}

// Message is a direct message to the partner of a match. ClientMsgID
// makes the send idempotent; SendMessage generates one when empty.
type Message struct {
	MatchID     string `json:"match_id"`
	Content     string `json:"content"`
	ClientMsgID string `json:"client_msg_id"`
}

// ThreadMessage is one message of a match thread.
type ThreadMessage struct {
	ID          string `json:"id"`
	SenderID    string `json:"sender_id"`
	Content     string `json:"content"`
	ClientMsgID string `json:"client_msg_id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// SendResult is the response to SendMessage.
type SendResult struct {
	Response
	Message ThreadMessage `json:"message"`
}

// Thread is the response to Thread.
type Thread struct {
	Response
	Messages []ThreadMessage `json:"messages"`
}

// AckResult is the response to AckNotifications.
type AckResult struct {
	Response
	Acked int `json:"acked"`
}
