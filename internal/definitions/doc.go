// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package definitions reads mime.types style definition files, as shipped
// with Apache httpd and most Unix distributions, into a mapping.
package definitions
