// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package mapping holds the bidirectional MIME type to extension mapping that
// the parser produces, the cache persists and the builder mutates.
package mapping
