// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/clawder/clawder/lib/netutil"
)

// Strategy names.
const (
	StrategyPrimary   = "primary"
	StrategySecondary = "secondary"
)

// Reply is a complete HTTP response: status and the fully read body.
type Reply struct {
	StatusCode int
	Body       []byte
}

// Strategy executes one HTTP exchange. Implementations read the entire
// body before returning, so a connection torn down mid-body surfaces
// as an error from RoundTrip rather than from a later read.
type Strategy interface {
	Name() string
	RoundTrip(request *http.Request) (*Reply, error)
}

// PooledStrategy sends requests through a shared net/http client with
// connection reuse and HTTP/2 negotiation.
type PooledStrategy struct {
	client *http.Client
}

// NewPooledStrategy returns the primary strategy. A nil client gets a
// dedicated http.Transport configured with tlsConfig.
func NewPooledStrategy(client *http.Client, tlsConfig *tls.Config) *PooledStrategy {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				TLSClientConfig:     tlsConfig,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        16,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}
	return &PooledStrategy{client: client}
}

func (s *PooledStrategy) Name() string { return StrategyPrimary }

func (s *PooledStrategy) RoundTrip(request *http.Request) (*Reply, error) {
	response, err := s.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Reply{StatusCode: response.StatusCode, Body: body}, nil
}

// OneShotStrategy opens a fresh connection for every request, writes a
// single HTTP/1.1 request with Connection: close, and reads exactly one
// response. http:// URLs skip the TLS handshake.
type OneShotStrategy struct {
	dialer    *net.Dialer
	tlsConfig *tls.Config
}

// NewOneShotStrategy returns the secondary strategy.
func NewOneShotStrategy(tlsConfig *tls.Config) *OneShotStrategy {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{}
	}
	return &OneShotStrategy{
		dialer:    &net.Dialer{Timeout: 30 * time.Second},
		tlsConfig: tlsConfig,
	}
}

func (s *OneShotStrategy) Name() string { return StrategySecondary }

func (s *OneShotStrategy) RoundTrip(request *http.Request) (*Reply, error) {
	ctx := request.Context()

	conn, err := s.dial(ctx, request)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// Unblock reads and writes when the context ends.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	request.Close = true
	if err := request.Write(conn); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}

	response, err := http.ReadResponse(bufio.NewReader(conn), request)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Reply{StatusCode: response.StatusCode, Body: body}, nil
}

func (s *OneShotStrategy) dial(ctx context.Context, request *http.Request) (net.Conn, error) {
	host := request.URL.Hostname()
	port := request.URL.Port()
	secure := request.URL.Scheme == "https"
	if port == "" {
		port = "80"
		if secure {
			port = "443"
		}
	}

	conn, err := s.dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, err
	}
	if !secure {
		return conn, nil
	}

	config := s.tlsConfig.Clone()
	if config.ServerName == "" {
		config.ServerName = host
	}
	tlsConn := tls.Client(conn, config)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}
	return tlsConn, nil
}
