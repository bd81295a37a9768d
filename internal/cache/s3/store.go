// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/staranto/mimemap/internal/cache"
	"github.com/staranto/mimemap/internal/cacheutil"
)

// API is the subset of the S3 client the store needs.
type API interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Store keeps cache blobs in Bucket beneath Prefix.
type Store struct {
	Client API
	Bucket string
	Prefix string
}

// New returns a Store for bucket. prefix may be empty.
func New(client API, bucket, prefix string) *Store {
	return &Store{Client: client, Bucket: bucket, Prefix: prefix}
}

// ObjectKey maps a cache key, which may be a filesystem path, to an object key.
// Paths beneath the local cache directory are made relative to it, so the
// cache of the built-in definitions has the same key on every host.
func (s *Store) ObjectKey(key string) string {
	if base, ok := cacheutil.Dir(); ok && filepath.IsAbs(key) {
		if rel, err := filepath.Rel(base, key); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			key = rel
		}
	}
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if s.Prefix == "" {
		return key
	}
	return path.Join(s.Prefix, key)
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	objectKey := s.ObjectKey(key)
	out, err := s.Client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if notFound(err) {
			return nil, cache.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.Bucket, objectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.Bucket, objectKey, err)
	}
	log.Debugf("read %d bytes from s3://%s/%s", len(data), s.Bucket, objectKey)
	return data, nil
}

func notFound(err error) bool {
	var (
		nsk  *types.NoSuchKey
		nf   *types.NotFound
		resp *awshttp.ResponseError
	)
	switch {
	case errors.As(err, &nsk), errors.As(err, &nf):
		return true
	case errors.As(err, &resp):
		return resp.HTTPStatusCode() == http.StatusNotFound
	}
	return false
}

// Write uploads data in a single PutObject, which S3 applies atomically.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	objectKey := s.ObjectKey(key)
	_, err := s.Client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", s.Bucket, objectKey, err)
	}
	log.Debugf("wrote %d bytes to s3://%s/%s", len(data), s.Bucket, objectKey)
	return nil
}
