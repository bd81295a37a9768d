// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package differ compares two mappings and renders the difference either as
// an annotated JSON listing or as a JSON delta.
package differ
