// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package builder creates a mapping from the built-in definitions, a custom
// definitions file, a cache file or nothing at all, lets callers add or
// reorder associations, and saves the result as a cache.
package builder
