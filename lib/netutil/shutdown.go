// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"crypto/tls"
	"errors"
	"io"
	"syscall"
)

// alertCloseNotify is the TLS close_notify alert code.
const alertCloseNotify tls.AlertError = 0

// IsTLSShutdown reports whether err belongs to the abrupt-shutdown
// family: the peer closed (cleanly or not) before a complete response
// arrived. That covers EOF, unexpected EOF, connection reset, and a
// close_notify alert surfaced as an error. These are the only failures
// worth retrying; DNS errors, refused connections, and certificate
// problems are not.
func IsTLSShutdown(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var alert tls.AlertError
	if errors.As(err, &alert) {
		return alert == alertCloseNotify
	}
	return false
}
