// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/mimemap/internal/cache"
	"github.com/staranto/mimemap/internal/mapping"
)

// fakeS3 keeps objects in memory, keyed by bucket/key.
type fakeS3 struct {
	objects map[string][]byte
	getErr  error
	puts    int
	lastPut *s3v2.PutObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	f.puts++
	f.lastPut = in
	return &s3v2.PutObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	t.Setenv("MIMEMAP_CACHE_DIR", filepath.Join(t.TempDir(), "cache"))
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "mime.types.db", "mime.types.db"},
		{"", "/etc/mime.types.db", "etc/mime.types.db"},
		{"caches", "/etc/mime.types.db", "caches/etc/mime.types.db"},
		{"caches/", "custom.db", "caches/custom.db"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.key, func(t *testing.T) {
			s := New(newFakeS3(), "bucket", tt.prefix)
			assert.Equal(t, tt.want, s.ObjectKey(tt.key))
		})
	}
}

func TestStore_ReadWrite(t *testing.T) {
	fake := newFakeS3()
	s := New(fake, "bucket", "prefix")

	require.NoError(t, s.Write(context.Background(), "a.db", []byte("blob")))
	assert.Equal(t, "application/json", *fake.lastPut.ContentType)
	assert.Equal(t, "prefix/a.db", *fake.lastPut.Key)

	got, err := s.Read(context.Background(), "a.db")
	require.NoError(t, err)
	assert.Equal(t, "blob", string(got))
}

func TestObjectKey_CacheDirIsStable(t *testing.T) {
	for _, home := range []string{"/home/alice", "/Users/bob"} {
		base := filepath.Join(home, ".cache", "mimemap")
		t.Setenv("MIMEMAP_CACHE_DIR", base)

		s := New(newFakeS3(), "bucket", "caches")
		assert.Equal(t, "caches/mime.types.db", s.ObjectKey(filepath.Join(base, "mime.types.db")))
		assert.Equal(t, "caches/sub/x.db", s.ObjectKey(filepath.Join(base, "sub", "x.db")))
	}

	t.Setenv("MIMEMAP_CACHE_DIR", "/var/cache/mimemap")
	s := New(newFakeS3(), "bucket", "")
	assert.Equal(t, "var/cache/mimemap-other/x.db", s.ObjectKey("/var/cache/mimemap-other/x.db"))
	assert.Equal(t, "relative/x.db", s.ObjectKey("relative/x.db"))
}

func TestStore_ReadMissing(t *testing.T) {
	_, err := New(newFakeS3(), "bucket", "").Read(context.Background(), "nope.db")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func responseError(status int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      errors.New("api error"),
		},
	}
}

func TestStore_NotFoundErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		missing bool
	}{
		{"no such key", &types.NoSuchKey{}, true},
		{"not found", &types.NotFound{}, true},
		{"http 404", responseError(http.StatusNotFound), true},
		{"http 403", responseError(http.StatusForbidden), false},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeS3()
			fake.getErr = tt.err

			_, err := New(fake, "bucket", "").Read(context.Background(), "a.db")
			require.Error(t, err)
			assert.Equal(t, tt.missing, errors.Is(err, cache.ErrNotFound))
		})
	}
}

func TestStore_ReadFailure(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("access denied")

	_, err := New(fake, "bucket", "").Read(context.Background(), "a.db")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrNotFound)
	assert.Contains(t, err.Error(), "s3://bucket/a.db")
}

func TestStore_WithLoader(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mime.types")
	require.NoError(t, os.WriteFile(src, []byte("text/plain txt text\n"), 0o600))

	fake := newFakeS3()
	loader := cache.New(cache.WithStore(New(fake, "bucket", "shared")))

	first, err := loader.Load(src, "mime.types.db")
	require.NoError(t, err)
	assert.Equal(t, []string{"txt", "text"}, first.Extensions["text/plain"])
	assert.Equal(t, 1, fake.puts)

	second, err := loader.Load(src, "mime.types.db")
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, fake.puts, "fresh cache must not be rewritten")

	custom := mapping.New()
	custom.Append("x/y", "xy")
	require.NoError(t, loader.Save(custom, "custom.db"))
	got, err := loader.Load("", "custom.db")
	require.NoError(t, err)
	assert.True(t, custom.Equal(got))
}
