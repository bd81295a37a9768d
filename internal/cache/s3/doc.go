// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package s3 is a cache.Store that keeps mapping caches as objects in an S3
// bucket, so several hosts can share one precomputed mapping.
package s3
