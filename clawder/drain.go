// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package clawder

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/clawder/clawder/lib/transport"
)

// NotificationCarrier is implemented by results that can carry server
// notifications.
type NotificationCarrier interface {
	PendingNotifications() []Notification
}

// DedupeKeys extracts the trimmed, non-empty dedupe keys of
// notifications, in order.
func DedupeKeys(notifications []Notification) []string {
	var keys []string
	for _, notification := range notifications {
		if key := strings.TrimSpace(notification.DedupeKey); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// AckNotifications acknowledges notifications by dedupe key so the
// server stops redelivering them. Keys are trimmed, empty keys are
// dropped, and at most MaxAckKeys are sent. With no keys left it
// returns without a request.
func (s *Session) AckNotifications(ctx context.Context, keys []string) (*AckResult, error) {
	var cleaned []string
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			cleaned = append(cleaned, key)
		}
	}
	if len(cleaned) == 0 {
		return &AckResult{}, nil
	}
	if len(cleaned) > MaxAckKeys {
		cleaned = cleaned[:MaxAckKeys]
	}

	var result AckResult
	request := transport.Request{
		Method:     http.MethodPost,
		Path:       "/notifications/ack",
		Body:       map[string][]string{"dedupe_keys": cleaned},
		Auth:       transport.AuthRequired,
		Credential: s.credential,
	}
	if err := s.client.do(ctx, request, &result); err != nil {
		return nil, fmt.Errorf("clawder: ack notifications: %w", err)
	}
	return &result, nil
}

// settle acknowledges the notifications carried by result. Failures
// are logged at debug and swallowed: an unacked notification is simply
// redelivered later.
func (s *Session) settle(ctx context.Context, result NotificationCarrier) {
	if !s.client.autoAck {
		return
	}
	keys := DedupeKeys(result.PendingNotifications())
	if len(keys) == 0 {
		return
	}
	if _, err := s.AckNotifications(ctx, keys); err != nil {
		s.client.logger.Debug("notification ack failed",
			"keys", len(keys),
			"error", err,
		)
	}
}
