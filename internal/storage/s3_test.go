package storage

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/nextbarber-api/internal/config"
)

func TestNewS3Store_RequiresBucket(t *testing.T) {
	if _, err := NewS3Store(config.StorageConfig{Region: "us-east-1"}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}

func TestNewS3Store_PublicURL(t *testing.T) {
	cases := []struct {
		cfg  config.StorageConfig
		want string
	}{
		{config.StorageConfig{Bucket: "media", Region: "us-east-1"}, "https://media.s3.us-east-1.amazonaws.com"},
		{config.StorageConfig{Bucket: "media", Region: "us-east-1", PublicBaseURL: "https://cdn.example/"}, "https://cdn.example"},
	}
	for _, tc := range cases {
		s, err := NewS3Store(tc.cfg)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if s.baseURL != tc.want {
			t.Fatalf("baseURL = %q, want %q", s.baseURL, tc.want)
		}
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore("http://files.local")

	url, err := s.Put(context.Background(), "barberias/1/logo.webp", "image/webp", []byte("x"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "http://files.local/barberias/1/logo.webp" {
		t.Fatalf("url = %q", url)
	}
	obj, ok := s.Get("barberias/1/logo.webp")
	if !ok || obj.ContentType != "image/webp" || string(obj.Body) != "x" {
		t.Fatalf("object = %+v ok=%v", obj, ok)
	}
}
