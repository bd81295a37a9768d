// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache persists precomputed mappings so a definitions file is only
// parsed again when its content hash changes. Cache blobs live in a Store,
// which is the local filesystem by default. A cache that is missing, corrupt
// or stale is rebuilt from the definitions file rather than reported as an
// error.
package cache
