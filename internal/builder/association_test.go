// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssociation(t *testing.T) {
	tests := []struct {
		spec    string
		want    Association
		wantErr bool
	}{
		{spec: "text/x-go:go", want: Association{"text/x-go", "go"}},
		{spec: " text/x-go : .go ", want: Association{"text/x-go", "go"}},
		{spec: "text/x-go go", want: Association{"text/x-go", "go"}},
		{spec: "text/x-go\tgo", want: Association{"text/x-go", "go"}},
		{spec: "", wantErr: true},
		{spec: "text/x-go", wantErr: true},
		{spec: "text/x-go:", wantErr: true},
		{spec: ":go", wantErr: true},
		{spec: "a b c", wantErr: true},
		{spec: "text/x go:go", wantErr: true},
		{spec: "text/x-go:#go", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseAssociation(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadAssociation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Mime+":"+tt.want.Extension, got.String())
		})
	}
}

func TestParseAssociations(t *testing.T) {
	got, err := ParseAssociations([]string{"a/b:x", "c/d y"})
	require.NoError(t, err)
	assert.Equal(t, []Association{{"a/b", "x"}, {"c/d", "y"}}, got)

	_, err = ParseAssociations([]string{"a/b:x", "broken"})
	assert.ErrorIs(t, err, ErrBadAssociation)
}

func TestAddAll(t *testing.T) {
	b := Blank()
	b.AddAll([]Association{
		{"text/markdown", "md"},
		{"text/markdown", "markdown"},
		{"text/x-markdown", "md"},
	})

	assert.Equal(t, []string{"markdown", "md"}, b.Mapping().Extensions["text/markdown"])
	assert.Equal(t, []string{"text/x-markdown", "text/markdown"}, b.Mapping().Mimes["md"])
}
