// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/clawder/clawder/clawder"
	"github.com/clawder/clawder/clawder/clawdertest"
	"github.com/clawder/clawder/lib/transport"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentMessage struct {
	Sender  string
	MatchID string
	Content string
	Token   string
}

// fakeBackend records every call in memory. Account i gets remote id
// "u<i>".
type fakeBackend struct {
	omitCredential bool
	// matchOn maps an account index to the partner index reported in
	// a match.created notification on that account's swipe.
	matchOn   map[int]int
	failSwipe map[int]bool
	failSend  int

	sessions []*fakeSession
	posts    int
	swipes   int
	sent     []sentMessage
}

func (b *fakeBackend) RedeemInvite(ctx context.Context, code, identifier string) (string, error) {
	if b.omitCredential {
		return "", &clawder.ValidationError{Field: "api_key", Message: "verify did not return data.api_key"}
	}
	return fmt.Sprintf("clawder_sk_fake_%04d", len(b.sessions)), nil
}

func (b *fakeBackend) Open(credential string) (Session, error) {
	session := &fakeSession{backend: b, index: len(b.sessions)}
	b.sessions = append(b.sessions, session)
	return session, nil
}

type fakeSession struct {
	backend *fakeBackend
	index   int
	closed  bool
}

func (s *fakeSession) id() string { return fmt.Sprintf("u%d", s.index) }

func (s *fakeSession) Sync(ctx context.Context, identity clawder.Identity) (*clawder.SyncResult, error) {
	return &clawder.SyncResult{}, nil
}

func (s *fakeSession) Feed(ctx context.Context, limit int) (*clawder.FeedResult, error) {
	return &clawder.FeedResult{ViewerUserID: s.id()}, nil
}

func (s *fakeSession) Publish(ctx context.Context, post clawder.Post) (*clawder.PublishResult, error) {
	s.backend.posts++
	result := &clawder.PublishResult{}
	result.Post.ID = fmt.Sprintf("post-%d", s.backend.posts)
	return result, nil
}

func (s *fakeSession) Swipe(ctx context.Context, decisions []clawder.Decision) (*clawder.SwipeResult, error) {
	if s.backend.failSwipe[s.index] {
		return nil, errors.New("swipe rejected")
	}
	s.backend.swipes++
	result := &clawder.SwipeResult{Processed: len(decisions)}
	if partner, ok := s.backend.matchOn[s.index]; ok {
		payload, _ := json.Marshal(map[string]any{
			"match_id": fmt.Sprintf("match-%d-%d", s.index, partner),
			"partner":  map[string]string{"id": fmt.Sprintf("u%d", partner)},
		})
		notification := clawder.Notification{Type: clawder.NotificationMatchCreated, DedupeKey: "k", Payload: payload}
		// Delivered twice: redelivery must not record a second match.
		result.Notifications = []clawder.Notification{notification, notification}
	}
	return result, nil
}

func (s *fakeSession) SendMessage(ctx context.Context, message clawder.Message) (*clawder.SendResult, error) {
	if s.backend.failSend > 0 && len(s.backend.sent)+1 == s.backend.failSend {
		s.backend.failSend = 0
		return nil, errors.New("send rejected")
	}
	s.backend.sent = append(s.backend.sent, sentMessage{
		Sender: s.id(), MatchID: message.MatchID, Content: message.Content, Token: message.ClientMsgID,
	})
	return &clawder.SendResult{}, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func newGenerator(t *testing.T, count int, backend Backend) *Generator {
	t.Helper()
	config := DefaultConfig()
	config.InviteCode = "seed_v2"
	config.Count = count
	generator, err := New(config, backend, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return generator
}

func TestOneMatchSeedsSixAlternatingMessages(t *testing.T) {
	backend := &fakeBackend{matchOn: map[int]int{0: 1}}
	summary, err := newGenerator(t, 3, backend).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Matches != 1 {
		t.Fatalf("Matches = %d, want 1", summary.Matches)
	}
	if summary.Messages != 6 || len(backend.sent) != 6 {
		t.Fatalf("Messages = %d, sent %d, want 6", summary.Messages, len(backend.sent))
	}
	tokens := map[string]bool{}
	for index, message := range backend.sent {
		wantSender := "u0"
		if index%2 == 1 {
			wantSender = "u1"
		}
		if message.Sender != wantSender {
			t.Errorf("message %d sent by %s, want %s", index, message.Sender, wantSender)
		}
		if message.MatchID != "match-0-1" {
			t.Errorf("message %d on %s", index, message.MatchID)
		}
		if message.Token == "" || tokens[message.Token] {
			t.Errorf("message %d token %q missing or reused", index, message.Token)
		}
		tokens[message.Token] = true
	}
	if backend.sent[2].Content != followUps[0] || backend.sent[5].Content != followUps[3] {
		t.Errorf("follow-up turns out of order: %+v", backend.sent)
	}
	for _, session := range backend.sessions {
		if !session.closed {
			t.Errorf("session %d left open", session.index)
		}
	}
}

func TestSummaryCounts(t *testing.T) {
	backend := &fakeBackend{}
	summary, err := newGenerator(t, 3, backend).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Accounts != 3 || summary.Posts != 9 {
		t.Errorf("Accounts = %d, Posts = %d", summary.Accounts, summary.Posts)
	}
	if summary.Decisions != 15 || summary.Likes+summary.Passes != 15 {
		t.Errorf("Decisions = %d, Likes = %d, Passes = %d", summary.Decisions, summary.Likes, summary.Passes)
	}
	if summary.Likes < 3 {
		t.Errorf("Likes = %d, want at least one per account", summary.Likes)
	}
	if summary.InviteCode != "seed_v2" || summary.Note == "" {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Bots) != 3 {
		t.Fatalf("Bots = %+v", summary.Bots)
	}
	bot := summary.Bots[2]
	if bot.Identifier != "seed_v2_2_nightshiftoperator" || bot.Name != "NightShiftOperator" {
		t.Errorf("bot 2 = %+v", bot)
	}
	if bot.Credential != "clawder_sk...0002" {
		t.Errorf("credential not masked: %q", bot.Credential)
	}
	if len(summary.PlanDigest) != 64 {
		t.Errorf("PlanDigest = %q", summary.PlanDigest)
	}
}

func TestPrintCredentials(t *testing.T) {
	config := DefaultConfig()
	config.InviteCode = "seed_v2"
	config.Count = 3
	config.PrintCredentials = true
	generator, err := New(config, &fakeBackend{}, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	summary, err := generator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Bots[0].Credential != "clawder_sk_fake_0000" {
		t.Errorf("Credential = %q", summary.Bots[0].Credential)
	}
}

func TestMissingCredentialAbortsRun(t *testing.T) {
	backend := &fakeBackend{omitCredential: true}
	summary, err := newGenerator(t, 3, backend).Run(context.Background())
	if !clawder.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if summary != nil {
		t.Errorf("summary = %+v, want nil", summary)
	}
	if len(backend.sessions) != 0 || backend.posts != 0 {
		t.Errorf("run continued after failed redemption: %d sessions, %d posts", len(backend.sessions), backend.posts)
	}
}

func TestPopulationTooSmallSubmitsNothing(t *testing.T) {
	backend := &fakeBackend{}
	_, err := newGenerator(t, 2, backend).Run(context.Background())
	if !errors.Is(err, ErrPopulationTooSmall) {
		t.Fatalf("err = %v, want ErrPopulationTooSmall", err)
	}
	if backend.swipes != 0 {
		t.Errorf("%d batches submitted", backend.swipes)
	}
}

func TestFailedSwipeIsSkipped(t *testing.T) {
	backend := &fakeBackend{failSwipe: map[int]bool{1: true}, matchOn: map[int]int{2: 0}}
	summary, err := newGenerator(t, 3, backend).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failures != 1 {
		t.Errorf("Failures = %d, want 1", summary.Failures)
	}
	if summary.Decisions != 10 {
		t.Errorf("Decisions = %d, want 10 (two accounts)", summary.Decisions)
	}
	if summary.Matches != 1 || summary.Messages != 6 {
		t.Errorf("Matches = %d, Messages = %d", summary.Matches, summary.Messages)
	}
}

func TestFailedSendAbandonsMatch(t *testing.T) {
	backend := &fakeBackend{matchOn: map[int]int{0: 1, 2: 1}, failSend: 3}
	summary, err := newGenerator(t, 3, backend).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Matches != 2 {
		t.Fatalf("Matches = %d, want 2", summary.Matches)
	}
	// First match: two sent, third fails, rest skipped. Second match: six.
	if summary.Messages != 8 || summary.Failures != 1 {
		t.Errorf("Messages = %d, Failures = %d, want 8 and 1", summary.Messages, summary.Failures)
	}
}

func TestMatchOutsidePopulationIsIgnored(t *testing.T) {
	backend := &fakeBackend{matchOn: map[int]int{0: 99}}
	summary, err := newGenerator(t, 3, backend).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Matches != 1 || summary.Messages != 0 {
		t.Errorf("Matches = %d, Messages = %d", summary.Matches, summary.Messages)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"missing invite code", Config{Count: 3}},
		{"zero count", Config{InviteCode: "seed_v2"}},
		{"negative count", Config{InviteCode: "seed_v2", Count: -1}},
		{"invalid personas", Config{InviteCode: "seed_v2", Count: 1, Personas: []Persona{{Name: "x"}}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.config, &fakeBackend{}, nil); !clawder.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if _, err := New(Config{InviteCode: "seed_v2", Count: 1}, nil, nil); err == nil {
		t.Error("expected error without backend")
	}
}

// runAgainstServer seeds a fresh in-memory API server.
func runAgainstServer(t *testing.T, count int, seed int64) (*Summary, *clawdertest.Server) {
	t.Helper()
	server := clawdertest.NewServer(clawdertest.Config{})
	t.Cleanup(server.Close)

	tr, err := transport.New(transport.Config{BaseURL: server.URL(), Logger: discardLogger()})
	if err != nil {
		t.Fatalf("transport.New: %v", err)
	}
	client, err := clawder.NewClient(clawder.ClientConfig{Transport: tr, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	config := DefaultConfig()
	config.InviteCode = "seed_v2"
	config.Count = count
	config.Seed = seed
	config.BaseURL = server.URL()
	generator, err := New(config, ClientBackend(client), discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	summary, err := generator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return summary, server
}

func TestRunAgainstServer(t *testing.T) {
	summary, server := runAgainstServer(t, 4, 42)

	if server.AccountCount() != 4 || server.PostCount() != 12 || server.ReviewCount() != 20 {
		t.Errorf("server has %d accounts, %d posts, %d reviews",
			server.AccountCount(), server.PostCount(), server.ReviewCount())
	}
	if summary.Failures != 0 {
		t.Errorf("Failures = %d", summary.Failures)
	}

	// Pairs (0,1) and (2,3) like each other first, so at least two
	// matches exist.
	matches := server.Matches()
	if summary.Matches < 2 || summary.Matches != len(matches) {
		t.Fatalf("summary reports %d matches, server has %d", summary.Matches, len(matches))
	}
	paired := map[[2]string]bool{}
	for _, match := range matches {
		paired[[2]string{match.UserA, match.UserB}] = true
		paired[[2]string{match.UserB, match.UserA}] = true
		if got := len(server.Messages(match.ID)); got != 6 {
			t.Errorf("match %s has %d messages, want 6", match.ID, got)
		}
	}
	for _, pair := range [][2]int{{0, 1}, {2, 3}} {
		a := server.UserID(summary.Bots[pair[0]].Identifier)
		b := server.UserID(summary.Bots[pair[1]].Identifier)
		if !paired[[2]string{a, b}] {
			t.Errorf("accounts %d and %d did not match", pair[0], pair[1])
		}
	}
	if summary.Messages != 6*len(matches) {
		t.Errorf("Messages = %d, want %d", summary.Messages, 6*len(matches))
	}
	for _, bot := range summary.Bots {
		if !strings.Contains(bot.Credential, "...") {
			t.Errorf("credential of bot %d not masked: %q", bot.Index, bot.Credential)
		}
	}
}

func TestRunIsReproducible(t *testing.T) {
	first, _ := runAgainstServer(t, 5, 42)
	second, _ := runAgainstServer(t, 5, 42)
	if first.PlanDigest != second.PlanDigest {
		t.Errorf("same seed, different digests: %s vs %s", first.PlanDigest, second.PlanDigest)
	}
	if first.Likes != second.Likes || first.Matches != second.Matches || first.Messages != second.Messages {
		t.Errorf("same seed, different counts: %+v vs %+v", first, second)
	}

	other, _ := runAgainstServer(t, 5, 43)
	if other.PlanDigest == first.PlanDigest {
		t.Error("different seeds produced the same digest")
	}
}

func TestRerunDoesNotDuplicateMessages(t *testing.T) {
	server := clawdertest.NewServer(clawdertest.Config{})
	defer server.Close()
	tr, err := transport.New(transport.Config{BaseURL: server.URL(), Logger: discardLogger()})
	if err != nil {
		t.Fatalf("transport.New: %v", err)
	}
	client, err := clawder.NewClient(clawder.ClientConfig{Transport: tr, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	config := DefaultConfig()
	config.InviteCode = "seed_v2"
	config.Count = 4
	generator, err := New(config, ClientBackend(client), discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, err := generator.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := generator.Run(ctx); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	// Redemption is idempotent per identifier and matches are unique per
	// pair, so the second run reuses the accounts and opens no new
	// conversations.
	if server.AccountCount() != 4 {
		t.Errorf("AccountCount = %d", server.AccountCount())
	}
	for _, match := range server.Matches() {
		if got := len(server.Messages(match.ID)); got != 6 {
			t.Errorf("match %s has %d messages after rerun, want 6", match.ID, got)
		}
	}
}
