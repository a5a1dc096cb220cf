package models

import (
	"testing"
	"time"
)

func TestWarningIsExpired(t *testing.T) {
	now := time.Now().UTC()

	t.Run("no expiry never expires", func(t *testing.T) {
		w := &Warning{}
		if w.IsExpired(now) {
			t.Error("warning without expiresAt should never expire")
		}
	})

	t.Run("future expiry is not expired", func(t *testing.T) {
		future := now.Add(time.Hour)
		w := &Warning{ExpiresAt: &future}
		if w.IsExpired(now) {
			t.Error("warning expiring in the future should not be expired")
		}
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		past := now.Add(-time.Hour)
		w := &Warning{ExpiresAt: &past}
		if !w.IsExpired(now) {
			t.Error("warning past its expiry should be expired")
		}
	})

	t.Run("exact expiry instant is expired", func(t *testing.T) {
		w := &Warning{ExpiresAt: &now}
		if !w.IsExpired(now) {
			t.Error("warning at its exact expiry should be expired")
		}
	})
}
