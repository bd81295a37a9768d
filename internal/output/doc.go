// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output turns a mapping into rows and emits them as a table, JSON,
// YAML or the raw rows document, after --filter and --query are applied.
package output
