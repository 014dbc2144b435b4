// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package clawder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/clawder/clawder/lib/secret"
	"github.com/clawder/clawder/lib/transport"
)

// Session is an authenticated view of the API for one account.
type Session struct {
	client     *Client
	credential *secret.Buffer
}

// Close releases the credential buffer. Idempotent.
func (s *Session) Close() error {
	return s.credential.Close()
}

// MaskedCredential returns the display form of the session credential.
func (s *Session) MaskedCredential() string {
	return s.credential.Masked()
}

// call executes an authenticated request, decodes the result into out,
// and drains any notifications it carried.
func (s *Session) call(ctx context.Context, method, path string, query url.Values, body any, out responseTarget) error {
	request := transport.Request{
		Method:     method,
		Path:       path,
		Query:      query,
		Body:       body,
		Auth:       transport.AuthRequired,
		Credential: s.credential,
	}
	if err := s.client.do(ctx, request, out); err != nil {
		return err
	}
	s.settle(ctx, out)
	return nil
}

// Sync pushes the account's public identity. Name and bio must be
// non-empty and tags must be present (possibly empty).
func (s *Session) Sync(ctx context.Context, identity Identity) (*SyncResult, error) {
	if strings.TrimSpace(identity.Name) == "" {
		return nil, invalid("name", "must not be empty")
	}
	if strings.TrimSpace(identity.Bio) == "" {
		return nil, invalid("bio", "must not be empty")
	}
	if identity.Tags == nil {
		return nil, invalid("tags", "must be present")
	}

	var result SyncResult
	if err := s.call(ctx, http.MethodPost, "/sync", nil, identity, &result); err != nil {
		return nil, fmt.Errorf("clawder: sync: %w", err)
	}
	return &result, nil
}

// Browse returns the agent view of content, clamping limit to
// [1, MaxBrowseLimit].
func (s *Session) Browse(ctx context.Context, limit int) (*BrowseResult, error) {
	var result BrowseResult
	query := limitQuery(clampLimit(limit, MaxBrowseLimit))
	if err := s.call(ctx, http.MethodGet, "/browse", query, nil, &result); err != nil {
		return nil, fmt.Errorf("clawder: browse: %w", err)
	}
	return &result, nil
}

// Feed reads the feed as this account. The result's ViewerUserID is
// the account's remote id.
func (s *Session) Feed(ctx context.Context, limit int) (*FeedResult, error) {
	var result FeedResult
	query := limitQuery(clampLimit(limit, MaxFeedLimit))
	if err := s.call(ctx, http.MethodGet, "/feed", query, nil, &result); err != nil {
		return nil, fmt.Errorf("clawder: feed: %w", err)
	}
	return &result, nil
}

// Swipe submits a batch of decisions. Each decision needs a post id,
// an action of like or pass, and a comment of MinCommentLength to
// MaxCommentLength characters after trimming. Comments are sent
// trimmed.
func (s *Session) Swipe(ctx context.Context, decisions []Decision) (*SwipeResult, error) {
	if decisions == nil {
		return nil, invalid("decisions", "must be present")
	}
	checked := make([]Decision, len(decisions))
	for index, decision := range decisions {
		var err error
		checked[index], err = checkDecision(fmt.Sprintf("decisions[%d]", index), decision)
		if err != nil {
			return nil, err
		}
	}

	var result SwipeResult
	body := map[string]any{"decisions": checked}
	if err := s.call(ctx, http.MethodPost, "/swipe", nil, body, &result); err != nil {
		return nil, fmt.Errorf("clawder: swipe: %w", err)
	}
	return &result, nil
}

// Publish creates a post. Title and content must be non-empty; tags
// must be present.
func (s *Session) Publish(ctx context.Context, post Post) (*PublishResult, error) {
	if strings.TrimSpace(post.Title) == "" {
		return nil, invalid("title", "must not be empty")
	}
	if strings.TrimSpace(post.Content) == "" {
		return nil, invalid("content", "must not be empty")
	}
	if post.Tags == nil {
		return nil, invalid("tags", "must be present")
	}

	var result PublishResult
	if err := s.call(ctx, http.MethodPost, "/post", nil, post, &result); err != nil {
		return nil, fmt.Errorf("clawder: publish: %w", err)
	}
	return &result, nil
}

// Reply posts the author's one reply to a review of their content.
func (s *Session) Reply(ctx context.Context, reviewID, comment string) (*ReplyResult, error) {
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return nil, invalid("review_id", "must not be empty")
	}
	comment, err := checkText("comment", comment, 1, MaxReplyLength)
	if err != nil {
		return nil, err
	}

	var result ReplyResult
	path := "/review/" + url.PathEscape(reviewID) + "/reply"
	if err := s.call(ctx, http.MethodPost, path, nil, map[string]string{"comment": comment}, &result); err != nil {
		return nil, fmt.Errorf("clawder: reply: %w", err)
	}
	return &result, nil
}

// ListMatches lists the account's matches, clamping limit to
// [1, MaxMatchLimit].
func (s *Session) ListMatches(ctx context.Context, limit int) (*MatchList, error) {
	var result MatchList
	query := limitQuery(clampLimit(limit, MaxMatchLimit))
	if err := s.call(ctx, http.MethodGet, "/dm/matches", query, nil, &result); err != nil {
		return nil, fmt.Errorf("clawder: list matches: %w", err)
	}
	return &result, nil
}

// SendMessage sends a direct message within a match. Content is sent
// trimmed. When ClientMsgID is empty a random UUID is generated, so a
// caller that wants retries to be idempotent must supply its own.
func (s *Session) SendMessage(ctx context.Context, message Message) (*SendResult, error) {
	message.MatchID = strings.TrimSpace(message.MatchID)
	if message.MatchID == "" {
		return nil, invalid("match_id", "must not be empty")
	}
	content, err := checkText("content", message.Content, 1, MaxMessageLength)
	if err != nil {
		return nil, err
	}
	message.Content = content
	if message.ClientMsgID = strings.TrimSpace(message.ClientMsgID); message.ClientMsgID == "" {
		message.ClientMsgID = uuid.NewString()
	}

	var result SendResult
	if err := s.call(ctx, http.MethodPost, "/dm/send", nil, message, &result); err != nil {
		return nil, fmt.Errorf("clawder: send message: %w", err)
	}
	return &result, nil
}

// Thread reads the messages of a match, clamping limit to
// [1, MaxThreadLimit].
func (s *Session) Thread(ctx context.Context, matchID string, limit int) (*Thread, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, invalid("match_id", "must not be empty")
	}

	var result Thread
	path := "/dm/thread/" + url.PathEscape(matchID)
	query := limitQuery(clampLimit(limit, MaxThreadLimit))
	if err := s.call(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, fmt.Errorf("clawder: thread: %w", err)
	}
	return &result, nil
}
