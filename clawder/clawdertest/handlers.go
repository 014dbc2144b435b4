// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package clawdertest

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

func (s *Server) handleVerify(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		PromoCode     string `json:"promo_code"`
		TwitterHandle string `json:"twitter_handle"`
	}
	if !decodeBody(writer, request, &body) {
		return
	}
	if !slices.Contains(s.config.InviteCodes, body.PromoCode) {
		writeError(writer, http.StatusForbidden, "invalid promo code")
		return
	}

	s.mu.Lock()
	created, existed := s.byHandle[body.TwitterHandle]
	if !existed || body.TwitterHandle == "" {
		id := s.nextID("user")
		created = &account{
			ID:     id,
			Key:    "clawder_sk_" + strings.ReplaceAll(id, "_", "") + "_fake",
			Handle: body.TwitterHandle,
		}
		s.accounts = append(s.accounts, created)
		s.byKey[created.Key] = created
		s.byID[created.ID] = created
		if body.TwitterHandle != "" {
			s.byHandle[body.TwitterHandle] = created
		}
	}
	s.mu.Unlock()

	data := map[string]any{"user_id": created.ID}
	if !s.config.OmitCredential {
		data["api_key"] = created.Key
	}
	s.respond(writer, nil, data)
}

func (s *Server) handleSync(writer http.ResponseWriter, request *http.Request, caller *account) {
	var body struct {
		Name    *string  `json:"name"`
		Bio     *string  `json:"bio"`
		Tags    []string `json:"tags"`
		Contact string   `json:"contact"`
	}
	if !decodeBody(writer, request, &body) {
		return
	}
	if body.Name == nil || body.Bio == nil || body.Tags == nil {
		writeError(writer, http.StatusBadRequest, "name, bio, and tags are required")
		return
	}

	s.mu.Lock()
	caller.Name = *body.Name
	caller.Bio = *body.Bio
	caller.Tags = body.Tags
	caller.Contact = body.Contact
	s.mu.Unlock()

	s.respond(writer, caller, map[string]any{"user": author{ID: caller.ID, Name: caller.Name}})
}

func (s *Server) handleFeed(writer http.ResponseWriter, request *http.Request) {
	caller := s.caller(request)
	limit := queryLimit(request, 10, 50)

	s.mu.Lock()
	posts := make([]post, 0, limit)
	for index := len(s.posts) - 1; index >= 0 && len(posts) < limit; index-- {
		posts = append(posts, *s.posts[index])
	}
	s.mu.Unlock()

	data := map[string]any{"posts": posts}
	if caller != nil && !s.config.OmitViewerID {
		data["viewer_user_id"] = caller.ID
	}
	s.respond(writer, caller, data)
}

func (s *Server) handleBrowse(writer http.ResponseWriter, request *http.Request, caller *account) {
	limit := queryLimit(request, 10, 50)

	s.mu.Lock()
	cards := make([]post, 0, limit)
	for _, candidate := range s.posts {
		if len(cards) == limit {
			break
		}
		if candidate.AuthorID != caller.ID {
			cards = append(cards, *candidate)
		}
	}
	s.mu.Unlock()

	s.respond(writer, caller, map[string]any{"cards": cards})
}

func (s *Server) handlePost(writer http.ResponseWriter, request *http.Request, caller *account) {
	var body struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if !decodeBody(writer, request, &body) {
		return
	}
	if body.Title == "" || body.Content == "" || body.Tags == nil {
		writeError(writer, http.StatusBadRequest, "title, content, and tags are required")
		return
	}

	s.mu.Lock()
	created := &post{
		ID:       s.nextID("post"),
		AuthorID: caller.ID,
		Title:    body.Title,
		Content:  body.Content,
		Tags:     body.Tags,
		Author:   author{ID: caller.ID, Name: caller.Name},
	}
	s.posts = append(s.posts, created)
	s.postByID[created.ID] = created
	s.mu.Unlock()

	s.respond(writer, caller, map[string]any{"post": map[string]string{"id": created.ID, "title": created.Title}})
}

func (s *Server) handleSwipe(writer http.ResponseWriter, request *http.Request, caller *account) {
	var body struct {
		Decisions []struct {
			PostID      string `json:"post_id"`
			Action      string `json:"action"`
			Comment     string `json:"comment"`
			BlockAuthor bool   `json:"block_author"`
		} `json:"decisions"`
	}
	if !decodeBody(writer, request, &body) {
		return
	}

	s.mu.Lock()
	for index, decision := range body.Decisions {
		target, ok := s.postByID[decision.PostID]
		if !ok {
			s.mu.Unlock()
			writeError(writer, http.StatusBadRequest, fmt.Sprintf("decisions[%d]: unknown post %q", index, decision.PostID))
			return
		}
		if target.AuthorID == caller.ID {
			s.mu.Unlock()
			writeError(writer, http.StatusBadRequest, fmt.Sprintf("decisions[%d]: cannot swipe own post", index))
			return
		}
		if decision.Action != "like" && decision.Action != "pass" {
			s.mu.Unlock()
			writeError(writer, http.StatusBadRequest, fmt.Sprintf("decisions[%d]: invalid action", index))
			return
		}
		if len(strings.TrimSpace(decision.Comment)) < 5 {
			s.mu.Unlock()
			writeError(writer, http.StatusBadRequest, fmt.Sprintf("decisions[%d]: comment too short", index))
			return
		}
	}

	var newMatches []map[string]string
	for _, decision := range body.Decisions {
		target := s.postByID[decision.PostID]
		reviewID := s.nextID("review")
		s.reviews[reviewID] = &review{
			ID:       reviewID,
			PostID:   target.ID,
			Reviewer: caller.ID,
			Action:   decision.Action,
			Comment:  decision.Comment,
		}
		if decision.Action != "like" {
			continue
		}
		s.likes[[2]string{caller.ID, target.AuthorID}] = true
		if !s.likes[[2]string{target.AuthorID, caller.ID}] {
			continue
		}
		if match := s.createMatchLocked(caller.ID, target.AuthorID); match != nil {
			newMatches = append(newMatches, map[string]string{"match_id": match.ID, "partner_id": target.AuthorID})
		}
	}
	s.mu.Unlock()

	s.respond(writer, caller, map[string]any{
		"processed":   len(body.Decisions),
		"new_matches": newMatches,
	})
}

// createMatchLocked records a match between two accounts and notifies
// both. Returns nil when the pair already matched. Must be called with
// s.mu held.
func (s *Server) createMatchLocked(userA, userB string) *Match {
	pair := [2]string{min(userA, userB), max(userA, userB)}
	if _, exists := s.pairMatch[pair]; exists {
		return nil
	}
	match := &Match{ID: s.nextID("match"), UserA: userA, UserB: userB, CreatedAt: s.timestamp()}
	s.matches = append(s.matches, match)
	s.matchByID[match.ID] = match
	s.pairMatch[pair] = match

	for _, side := range [][2]string{{userA, userB}, {userB, userA}} {
		partner := s.byID[side[1]]
		s.pending[side[0]] = append(s.pending[side[0]], Notification{
			Type:      "match.created",
			DedupeKey: "match.created:" + match.ID + ":" + side[0],
			Payload: map[string]any{
				"match_id": match.ID,
				"partner":  map[string]string{"id": partner.ID, "name": partner.Name},
			},
		})
	}
	return match
}

func (s *Server) handleReply(writer http.ResponseWriter, request *http.Request, caller *account) {
	var body struct {
		Comment string `json:"comment"`
	}
	if !decodeBody(writer, request, &body) {
		return
	}

	s.mu.Lock()
	target, ok := s.reviews[request.PathValue("id")]
	var status int
	var message string
	switch {
	case !ok:
		status, message = http.StatusNotFound, "review not found"
	case s.postByID[target.PostID].AuthorID != caller.ID:
		status, message = http.StatusForbidden, "only the post author can reply"
	case target.Replied:
		status, message = http.StatusConflict, "review already has a reply"
	default:
		target.Replied = true
	}
	s.mu.Unlock()

	if status != 0 {
		writeError(writer, status, message)
		return
	}
	s.respond(writer, caller, map[string]any{"review_id": target.ID, "reply": body.Comment})
}

func (s *Server) handleAck(writer http.ResponseWriter, request *http.Request, caller *account) {
	var body struct {
		DedupeKeys []string `json:"dedupe_keys"`
	}
	if !decodeBody(writer, request, &body) {
		return
	}
	if len(body.DedupeKeys) > 200 {
		writeError(writer, http.StatusBadRequest, "at most 200 dedupe keys per request")
		return
	}

	s.mu.Lock()
	acked := 0
	remaining := s.pending[caller.ID][:0]
	for _, notification := range s.pending[caller.ID] {
		if slices.Contains(body.DedupeKeys, notification.DedupeKey) {
			acked++
			continue
		}
		remaining = append(remaining, notification)
	}
	s.pending[caller.ID] = remaining
	s.acked = append(s.acked, body.DedupeKeys...)
	s.mu.Unlock()

	writeJSON(writer, http.StatusOK, map[string]any{"ok": true, "data": map[string]int{"acked": acked}})
}

func (s *Server) handleMatches(writer http.ResponseWriter, request *http.Request, caller *account) {
	limit := queryLimit(request, 50, 100)

	s.mu.Lock()
	var matches []map[string]string
	for _, match := range s.matches {
		if len(matches) == limit {
			break
		}
		partnerID := ""
		switch caller.ID {
		case match.UserA:
			partnerID = match.UserB
		case match.UserB:
			partnerID = match.UserA
		default:
			continue
		}
		matches = append(matches, map[string]string{
			"match_id":     match.ID,
			"partner_id":   partnerID,
			"partner_name": s.byID[partnerID].Name,
			"created_at":   match.CreatedAt,
		})
	}
	s.mu.Unlock()

	s.respond(writer, caller, map[string]any{"matches": matches})
}

func (s *Server) handleSend(writer http.ResponseWriter, request *http.Request, caller *account) {
	var body struct {
		MatchID     string `json:"match_id"`
		Content     string `json:"content"`
		ClientMsgID string `json:"client_msg_id"`
	}
	if !decodeBody(writer, request, &body) {
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		writeError(writer, http.StatusBadRequest, "content is required")
		return
	}

	s.mu.Lock()
	match, ok := s.matchByID[body.MatchID]
	if !ok || (match.UserA != caller.ID && match.UserB != caller.ID) {
		s.mu.Unlock()
		writeError(writer, http.StatusForbidden, "not a participant of this match")
		return
	}
	if body.ClientMsgID != "" {
		for _, existing := range s.messages[match.ID] {
			if existing.ClientMsgID == body.ClientMsgID {
				s.mu.Unlock()
				s.respond(writer, caller, map[string]any{"message": existing, "deduplicated": true})
				return
			}
		}
	}
	stored := Message{
		ID:          s.nextID("msg"),
		MatchID:     match.ID,
		SenderID:    caller.ID,
		Content:     body.Content,
		ClientMsgID: body.ClientMsgID,
		CreatedAt:   s.timestamp(),
	}
	s.messages[match.ID] = append(s.messages[match.ID], stored)
	s.mu.Unlock()

	s.respond(writer, caller, map[string]any{"message": stored})
}

func (s *Server) handleThread(writer http.ResponseWriter, request *http.Request, caller *account) {
	limit := queryLimit(request, 50, 200)

	s.mu.Lock()
	match, ok := s.matchByID[request.PathValue("id")]
	if !ok || (match.UserA != caller.ID && match.UserB != caller.ID) {
		s.mu.Unlock()
		writeError(writer, http.StatusForbidden, "not a participant of this match")
		return
	}
	messages := s.messages[match.ID]
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	messages = append([]Message(nil), messages...)
	s.mu.Unlock()

	s.respond(writer, caller, map[string]any{"messages": messages})
}
