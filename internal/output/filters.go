// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/mimemap/internal/filters"
)

// FilterDataset parses the raw JSON rows document and keeps the rows matching
// the --filter spec.
func FilterDataset(raw []byte, spec string) []gjson.Result {
	if !gjson.ValidBytes(raw) {
		log.Errorf("dataset is not valid JSON: %d bytes", len(raw))
		return nil
	}

	rows := filters.FilterRows(gjson.ParseBytes(raw), spec)
	log.WithFields(log.Fields{
		"filter": spec,
		"rows":   len(rows),
	}).Debug("filtered dataset")

	return rows
}

// joinRows reassembles rows into a JSON array, keeping each row's key order.
func joinRows(rows []gjson.Result) string {
	raws := make([]string, 0, len(rows))
	for _, row := range rows {
		raws = append(raws, row.Raw)
	}
	return "[" + strings.Join(raws, ",") + "]"
}

// QueryDataset runs a gjson path against the filtered rows. An empty query
// returns the rows document itself.
func QueryDataset(rows []gjson.Result, query string) gjson.Result {
	doc := joinRows(rows)
	if query == "" {
		return gjson.Parse(doc)
	}
	return gjson.Get(doc, query)
}
