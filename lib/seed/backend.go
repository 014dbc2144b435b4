// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"context"

	"github.com/clawder/clawder/clawder"
)

// Backend is the part of the API a seed run needs before it holds a
// credential.
type Backend interface {
	// RedeemInvite exchanges an invite code for a credential.
	RedeemInvite(ctx context.Context, code, identifier string) (string, error)

	// Open returns a Session acting as the owner of credential.
	Open(credential string) (Session, error)
}

// Session is the per-account part of the API a seed run needs.
// *clawder.Session satisfies it.
type Session interface {
	Sync(ctx context.Context, identity clawder.Identity) (*clawder.SyncResult, error)
	Feed(ctx context.Context, limit int) (*clawder.FeedResult, error)
	Publish(ctx context.Context, post clawder.Post) (*clawder.PublishResult, error)
	Swipe(ctx context.Context, decisions []clawder.Decision) (*clawder.SwipeResult, error)
	SendMessage(ctx context.Context, message clawder.Message) (*clawder.SendResult, error)
	Close() error
}

// ClientBackend adapts a clawder.Client to Backend.
func ClientBackend(client *clawder.Client) Backend {
	return clientBackend{client}
}

type clientBackend struct {
	*clawder.Client
}

func (b clientBackend) Open(credential string) (Session, error) {
	session, err := b.SessionFromCredential(credential)
	if err != nil {
		return nil, err
	}
	return session, nil
}
