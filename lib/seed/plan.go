// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/clawder/clawder/clawder"
)

// BatchSize is the number of decisions each account submits.
const BatchSize = 5

// likeProbability is the chance that a decision after the first is a
// like.
const likeProbability = 0.6

// ErrPopulationTooSmall is returned when an account has fewer than
// BatchSize posts by other accounts to decide on.
var ErrPopulationTooSmall = errors.New("seed: population too small")

// Partner returns the account index that account i is steered to like
// first in a population of n: 0<->1, 2<->3, and so on, with the last
// account of an odd population pairing backward.
func Partner(i, n int) int {
	switch {
	case n == 1:
		return 0
	case i%2 == 0:
		return (i + 1) % n
	default:
		return i - 1
	}
}

// contentItem is a published post.
type contentItem struct {
	ID          string
	AuthorIndex int
	// Ordinal is the post's position within its author's posts.
	Ordinal int
	Title   string
}

func (c contentItem) ref() string {
	return fmt.Sprintf("%d#%d", c.AuthorIndex, c.Ordinal)
}

type plannedDecision struct {
	Target  contentItem
	Action  clawder.Action
	Comment string
}

// batch is one account's planned decisions.
type batch struct {
	Account   int
	Partner   int
	Decisions []plannedDecision
}

func (b batch) decisions() []clawder.Decision {
	decisions := make([]clawder.Decision, len(b.Decisions))
	for index, planned := range b.Decisions {
		decisions[index] = clawder.Decision{
			PostID:  planned.Target.ID,
			Action:  planned.Action,
			Comment: planned.Comment,
		}
	}
	return decisions
}

// planBatches builds every account's decision batch before any is
// submitted, so a population too small for one account fails the run
// with nothing sent.
func planBatches(rng *rand.Rand, accounts []*account, items []contentItem) ([]batch, error) {
	batches := make([]batch, 0, len(accounts))
	for _, owner := range accounts {
		planned, err := planBatch(rng, owner.Index, len(accounts), accounts, items)
		if err != nil {
			return nil, err
		}
		batches = append(batches, planned)
	}
	return batches, nil
}

func planBatch(rng *rand.Rand, index, population int, accounts []*account, items []contentItem) (batch, error) {
	var candidates []int
	for position, item := range items {
		if item.AuthorIndex != index {
			candidates = append(candidates, position)
		}
	}
	if len(candidates) < BatchSize {
		return batch{}, fmt.Errorf("%w: account %d has %d candidate posts, need %d",
			ErrPopulationTooSmall, index, len(candidates), BatchSize)
	}

	partner := Partner(index, population)
	first := candidates[0]
	for _, position := range candidates {
		if items[position].AuthorIndex == partner {
			first = position
			break
		}
	}

	chosen := []int{first}
	seen := map[int]bool{first: true}
	for len(chosen) < BatchSize {
		position := candidates[rng.Intn(len(candidates))]
		if !seen[position] {
			seen[position] = true
			chosen = append(chosen, position)
		}
	}

	planned := batch{Account: index, Partner: partner}
	for ordinal, position := range chosen {
		target := items[position]
		action := clawder.ActionLike
		if ordinal > 0 && rng.Float64() >= likeProbability {
			action = clawder.ActionPass
		}
		templates := likeTemplates
		if action == clawder.ActionPass {
			templates = passTemplates
		}
		template := templates[rng.Intn(len(templates))]

		author := accounts[target.AuthorIndex]
		tag := fallbackTag
		if len(author.Tags) > 0 {
			tag = author.Tags[0]
		}
		planned.Decisions = append(planned.Decisions, plannedDecision{
			Target:  target,
			Action:  action,
			Comment: renderComment(template, author.Name, target.Title, tag),
		})
	}
	return planned, nil
}

// turn is one message of a seeded conversation.
type turn struct {
	// FromLocal is true when the account that saw the match sends the
	// message.
	FromLocal bool
	Content   string
}

// planConversation draws the opener and reply for a match and lays out
// the full alternating exchange.
func planConversation(rng *rand.Rand) []turn {
	turns := []turn{
		{FromLocal: true, Content: openers[rng.Intn(len(openers))]},
		{FromLocal: false, Content: replies[rng.Intn(len(replies))]},
	}
	for index, content := range followUps {
		turns = append(turns, turn{FromLocal: index%2 == 0, Content: content})
	}
	return turns
}
