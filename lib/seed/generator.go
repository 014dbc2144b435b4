// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/clawder/clawder/clawder"
	"github.com/clawder/clawder/lib/secret"
)

// tokenNamespace scopes the message tokens derived by a seed run.
var tokenNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.clawder.ai/seed"))

// account is one member of the synthetic population.
type account struct {
	Index      int
	Name       string
	Bio        string
	Tags       []string
	Posts      []PersonaPost
	Identifier string
	// Display is the credential as it appears in the summary.
	Display  string
	RemoteID string
	session  Session
}

// Match is a match reported by the server during the run.
type Match struct {
	MatchID string
	// LocalID is the remote id of the account whose response carried
	// the notification.
	LocalID string
	// RemoteID is the partner's remote id.
	RemoteID string
}

// Generator runs seed passes against a Backend.
type Generator struct {
	config   Config
	personas []Persona
	backend  Backend
	logger   *slog.Logger

	rng    *rand.Rand
	digest *blake3.Hasher
}

// New creates a Generator. If logger is nil, slog.Default() is used.
func New(config Config, backend Backend, logger *slog.Logger) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, fmt.Errorf("seed: backend is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	personas := config.Personas
	if len(personas) == 0 {
		personas = DefaultPersonas()
	}
	return &Generator{
		config:   config,
		personas: personas,
		backend:  backend,
		logger:   logger,
	}, nil
}

// Run builds the population and returns a summary of what was actually
// created. An error means the population could not be built; the
// accounts created up to that point remain on the server.
//
// A Generator holds the random stream of one run. Run resets it, so
// calling Run twice repeats the same plan.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	g.rng = rand.New(rand.NewSource(g.config.Seed))
	g.digest = blake3.New()

	summary := &Summary{
		BaseURL:    g.config.BaseURL,
		InviteCode: strings.TrimSpace(g.config.InviteCode),
		Note:       summaryNote,
	}

	accounts, err := g.createAccounts(ctx)
	defer func() {
		for _, member := range accounts {
			member.session.Close()
		}
	}()
	if err != nil {
		return nil, err
	}
	summary.Accounts = len(accounts)
	for _, member := range accounts {
		summary.Bots = append(summary.Bots, Bot{
			Index:      member.Index,
			Name:       member.Name,
			Identifier: member.Identifier,
			Credential: member.Display,
		})
	}

	if err := g.syncIdentities(ctx, accounts); err != nil {
		return nil, err
	}
	if err := g.resolveIdentities(ctx, accounts); err != nil {
		return nil, err
	}
	items, err := g.publish(ctx, accounts)
	if err != nil {
		return nil, err
	}
	summary.Posts = len(items)

	batches, err := planBatches(g.rng, accounts, items)
	if err != nil {
		return nil, err
	}
	for _, planned := range batches {
		g.recordBatch(planned)
	}

	matches := g.submit(ctx, accounts, batches, summary)
	summary.Matches = len(matches)
	g.converse(ctx, accounts, matches, summary)

	summary.PlanDigest = fmt.Sprintf("%x", g.digest.Sum(nil))
	g.logger.Info("seed complete",
		"accounts", summary.Accounts,
		"posts", summary.Posts,
		"swipes", summary.Decisions,
		"matches", summary.Matches,
		"messages", summary.Messages,
		"failures", summary.Failures,
	)
	return summary, nil
}

// createAccounts redeems one invite per account. Personas are assigned
// by index, cycling through the catalog.
func (g *Generator) createAccounts(ctx context.Context) ([]*account, error) {
	code := strings.TrimSpace(g.config.InviteCode)
	accounts := make([]*account, 0, g.config.Count)
	for index := range g.config.Count {
		persona := g.personas[index%len(g.personas)]
		identifier := strings.ToLower(fmt.Sprintf("seed_v2_%d_%s", index, persona.Name))

		credential, err := g.backend.RedeemInvite(ctx, code, identifier)
		if err != nil {
			return accounts, fmt.Errorf("seed: creating account %d: %w", index, err)
		}
		session, err := g.backend.Open(credential)
		if err != nil {
			return accounts, fmt.Errorf("seed: opening account %d: %w", index, err)
		}
		display := secret.Mask(credential)
		if g.config.PrintCredentials {
			display = credential
		}
		accounts = append(accounts, &account{
			Index:      index,
			Name:       persona.Name,
			Bio:        persona.Bio,
			Tags:       persona.Tags,
			Posts:      persona.Posts,
			Identifier: identifier,
			Display:    display,
			session:    session,
		})
		g.logger.Debug("account created", "index", index, "name", persona.Name, "credential", secret.Mask(credential))
	}
	g.logger.Info("accounts created", "count", len(accounts))
	return accounts, nil
}

func (g *Generator) syncIdentities(ctx context.Context, accounts []*account) error {
	for _, member := range accounts {
		identity := clawder.Identity{Name: member.Name, Bio: member.Bio, Tags: member.Tags}
		if _, err := member.session.Sync(ctx, identity); err != nil {
			return fmt.Errorf("seed: syncing account %d: %w", member.Index, err)
		}
	}
	return nil
}

// resolveIdentities learns each account's remote id so that match
// notifications can be attributed to accounts.
func (g *Generator) resolveIdentities(ctx context.Context, accounts []*account) error {
	for _, member := range accounts {
		feed, err := member.session.Feed(ctx, 1)
		if err != nil {
			return fmt.Errorf("seed: resolving account %d: %w", member.Index, err)
		}
		member.RemoteID = strings.TrimSpace(feed.ViewerUserID)
		if member.RemoteID == "" {
			return &clawder.ValidationError{
				Field:   "viewer_user_id",
				Message: fmt.Sprintf("feed did not return data.viewer_user_id for account %d", member.Index),
			}
		}
	}
	return nil
}

func (g *Generator) publish(ctx context.Context, accounts []*account) ([]contentItem, error) {
	var items []contentItem
	for _, member := range accounts {
		for ordinal, post := range member.Posts {
			tags := []string{member.Tags[g.rng.Intn(len(member.Tags))], "introductions"}
			fmt.Fprintf(g.digest, "post %d#%d %s\n", member.Index, ordinal, strings.Join(tags, ","))

			result, err := member.session.Publish(ctx, clawder.Post{Title: post.Title, Content: post.Content, Tags: tags})
			if err != nil {
				return nil, fmt.Errorf("seed: publishing post %d of account %d: %w", ordinal, member.Index, err)
			}
			id := strings.TrimSpace(result.Post.ID)
			if id == "" {
				return nil, &clawder.ValidationError{
					Field:   "post.id",
					Message: fmt.Sprintf("post did not return data.post.id for account %d", member.Index),
				}
			}
			items = append(items, contentItem{ID: id, AuthorIndex: member.Index, Ordinal: ordinal, Title: post.Title})
		}
	}
	g.logger.Info("posts published", "count", len(items))
	return items, nil
}

func (g *Generator) recordBatch(planned batch) {
	fmt.Fprintf(g.digest, "batch %d partner %d\n", planned.Account, planned.Partner)
	for _, decision := range planned.Decisions {
		fmt.Fprintf(g.digest, "  %s %s %q\n", decision.Target.ref(), decision.Action, decision.Comment)
	}
}

// submit sends each account's batch and collects the matches reported
// in the responses, first report wins. A failed batch is logged and
// skipped.
func (g *Generator) submit(ctx context.Context, accounts []*account, batches []batch, summary *Summary) []Match {
	var matches []Match
	seen := make(map[string]bool)
	for _, planned := range batches {
		member := accounts[planned.Account]
		result, err := member.session.Swipe(ctx, planned.decisions())
		if err != nil {
			summary.Failures++
			g.logger.Warn("swipe batch failed", "account", member.Index, "error", err)
			continue
		}
		for _, decision := range planned.Decisions {
			summary.Decisions++
			if decision.Action == clawder.ActionLike {
				summary.Likes++
			} else {
				summary.Passes++
			}
		}
		for _, notification := range result.Notifications {
			created, ok := notification.MatchCreated()
			if !ok || seen[created.MatchID] {
				continue
			}
			seen[created.MatchID] = true
			matches = append(matches, Match{
				MatchID:  created.MatchID,
				LocalID:  member.RemoteID,
				RemoteID: strings.TrimSpace(created.Partner.ID),
			})
		}
	}
	g.logger.Info("swipes submitted", "decisions", summary.Decisions, "matches", len(matches))
	return matches
}

// converse seeds a conversation on every match whose two accounts
// belong to this run. A failed send abandons the rest of that match.
func (g *Generator) converse(ctx context.Context, accounts []*account, matches []Match, summary *Summary) {
	byRemoteID := make(map[string]*account, len(accounts))
	for _, member := range accounts {
		byRemoteID[member.RemoteID] = member
	}

	for _, match := range matches {
		local, remote := byRemoteID[match.LocalID], byRemoteID[match.RemoteID]
		if local == nil || remote == nil {
			g.logger.Debug("match outside population", "match", match.MatchID)
			continue
		}
		turns := planConversation(g.rng)
		fmt.Fprintf(g.digest, "conversation %d-%d\n", local.Index, remote.Index)

		for index, step := range turns {
			sender := remote
			if step.FromLocal {
				sender = local
			}
			fmt.Fprintf(g.digest, "  %d %q\n", sender.Index, step.Content)
			message := clawder.Message{
				MatchID:     match.MatchID,
				Content:     step.Content,
				ClientMsgID: g.messageToken(match.MatchID, index),
			}
			if _, err := sender.session.SendMessage(ctx, message); err != nil {
				summary.Failures++
				g.logger.Warn("conversation abandoned",
					"match", match.MatchID,
					"turn", index,
					"error", err,
				)
				break
			}
			summary.Messages++
		}
	}
	g.logger.Info("conversations seeded", "messages", summary.Messages)
}

// messageToken derives the idempotency token of a conversation turn,
// so that re-running with the same seed resends rather than duplicates.
func (g *Generator) messageToken(matchID string, turn int) string {
	name := fmt.Sprintf("%d/%s/%d", g.config.Seed, matchID, turn)
	return uuid.NewSHA1(tokenNamespace, []byte(name)).String()
}
