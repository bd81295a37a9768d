// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/staranto/mimemap/internal/mapping"
)

// json sorts map keys, which keeps the encoding deterministic.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is a mapping together with the content hash of the definitions
// file it was built from. Hash is empty when there was no source file.
type Envelope struct {
	Mapping *mapping.Mapping
	Hash    string
}

// DecodeStatus classifies the outcome of reading a cache blob.
type DecodeStatus int

const (
	// Absent means there was no cache blob to read.
	Absent DecodeStatus = iota
	// Invalid means a blob existed but could not be read or decoded.
	Invalid
	// Decoded means the blob held a well-formed envelope.
	Decoded
)

func (s DecodeStatus) String() string {
	switch s {
	case Absent:
		return "absent"
	case Invalid:
		return "invalid"
	case Decoded:
		return "decoded"
	default:
		return fmt.Sprintf("DecodeStatus(%d)", int(s))
	}
}

// DecodeResult is returned by Decode. Envelope is only set when Status is
// Decoded; Err explains an Invalid status.
type DecodeResult struct {
	Status   DecodeStatus
	Envelope Envelope
	Err      error
}

// wireEnvelope is the on-disk shape.
type wireEnvelope struct {
	Extensions map[string][]string `json:"extensions"`
	Hash       string              `json:"hash,omitempty"`
	Mimes      map[string][]string `json:"mimes"`
}

var (
	errMissingMimes      = errors.New("missing mimes object")
	errMissingExtensions = errors.New("missing extensions object")
	errTrailingData      = errors.New("trailing data after envelope")
)

// rawPrefix marks a string stored as base64 because JSON cannot carry it
// byte for byte. Plain strings that begin with rawPrefix are escaped as well.
const rawPrefix = "\x00b64:"

func escape(s string) string {
	if utf8.ValidString(s) && !strings.HasPrefix(s, rawPrefix) {
		return s
	}
	return rawPrefix + base64.StdEncoding.EncodeToString([]byte(s))
}

func unescape(s string) (string, error) {
	if !strings.HasPrefix(s, rawPrefix) {
		return s, nil
	}
	b, err := base64.StdEncoding.DecodeString(s[len(rawPrefix):])
	if err != nil {
		return "", fmt.Errorf("bad escaped string %q: %w", s, err)
	}
	return string(b), nil
}

// escapeSide returns side with every key and value escaped. The input is
// returned unchanged when nothing needs escaping.
func escapeSide(side map[string][]string) map[string][]string {
	if side == nil {
		return map[string][]string{}
	}

	if sideClean(side) {
		return side
	}

	out := make(map[string][]string, len(side))
	for k, vs := range side {
		ev := make([]string, len(vs))
		for i, v := range vs {
			ev[i] = escape(v)
		}
		out[escape(k)] = ev
	}
	return out
}

func sideClean(side map[string][]string) bool {
	for k, vs := range side {
		if escape(k) != k {
			return false
		}
		for _, v := range vs {
			if escape(v) != v {
				return false
			}
		}
	}
	return true
}

func unescapeSide(side map[string][]string) (map[string][]string, error) {
	out := make(map[string][]string, len(side))
	for k, vs := range side {
		key, err := unescape(k)
		if err != nil {
			return nil, err
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		uv := make([]string, len(vs))
		for i, v := range vs {
			if uv[i], err = unescape(v); err != nil {
				return nil, err
			}
		}
		out[key] = uv
	}
	return out, nil
}

// Encode serializes env. Nil maps are written as empty objects and strings
// that are not valid UTF-8 are escaped, so that every mapping decodes back to
// an equal one.
func Encode(env Envelope) ([]byte, error) {
	if env.Mapping == nil {
		return nil, ErrInvalidMapping
	}

	w := wireEnvelope{
		Extensions: escapeSide(env.Mapping.Extensions),
		Hash:       env.Hash,
		Mimes:      escapeSide(env.Mapping.Mimes),
	}

	data, err := json.Marshal(&w)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mapping: %w", err)
	}
	return data, nil
}

// Decode parses a cache blob. Any problem with the blob yields an Invalid
// result, never an error.
func Decode(data []byte) DecodeResult {
	var w wireEnvelope

	r := bytes.NewReader(data)
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return DecodeResult{Status: Invalid, Err: err}
	}
	rest, err := io.ReadAll(io.MultiReader(dec.Buffered(), r))
	if err != nil {
		return DecodeResult{Status: Invalid, Err: err}
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		return DecodeResult{Status: Invalid, Err: errTrailingData}
	}

	switch {
	case w.Mimes == nil:
		return DecodeResult{Status: Invalid, Err: errMissingMimes}
	case w.Extensions == nil:
		return DecodeResult{Status: Invalid, Err: errMissingExtensions}
	}

	extensions, err := unescapeSide(w.Extensions)
	if err != nil {
		return DecodeResult{Status: Invalid, Err: err}
	}
	mimes, err := unescapeSide(w.Mimes)
	if err != nil {
		return DecodeResult{Status: Invalid, Err: err}
	}

	return DecodeResult{
		Status: Decoded,
		Envelope: Envelope{
			Mapping: &mapping.Mapping{Extensions: extensions, Mimes: mimes},
			Hash:    w.Hash,
		},
	}
}
