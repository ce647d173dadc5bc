package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPageCursor_EncodeDecode(t *testing.T) {
	cursor := &PageCursor{
		LastID:        uuid.New(),
		LastCreatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	token := cursor.Encode()
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	decoded, err := DecodePageCursor(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.LastID != cursor.LastID || !decoded.LastCreatedAt.Equal(cursor.LastCreatedAt) {
		t.Errorf("cursor mismatch: %+v vs %+v", decoded, cursor)
	}
}

func TestDecodePageCursor_EmptyToken(t *testing.T) {
	cursor, err := DecodePageCursor("")
	if err != nil || cursor != nil {
		t.Errorf("empty token must decode to nil cursor, got %v, %v", cursor, err)
	}
}

func TestDecodePageCursor_Malformed(t *testing.T) {
	if _, err := DecodePageCursor("???not-base64???"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestNormalizePageSize(t *testing.T) {
	tests := []struct {
		in  int32
		out int32
	}{
		{0, DefaultPageSize},
		{-5, DefaultPageSize},
		{50, 50},
		{MaxPageSize + 1, MaxPageSize},
	}

	for _, tc := range tests {
		if got := NormalizePageSize(tc.in); got != tc.out {
			t.Errorf("NormalizePageSize(%d) = %d, want %d", tc.in, got, tc.out)
		}
	}
}
