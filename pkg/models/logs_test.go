package models

import "testing"

func TestAuditLogFormatDetails(t *testing.T) {
	t.Run("projects member action fields", func(t *testing.T) {
		a := &AuditLog{
			ActionType: ActionMemberBan,
			Details: map[string]any{
				"user":     "alice",
				"duration": 3600,
				"internal": "dropped",
			},
		}

		got := a.FormatDetails()
		if got["user"] != "alice" || got["duration"] != 3600 {
			t.Errorf("unexpected projection: %v", got)
		}
		if _, ok := got["internal"]; ok {
			t.Error("unrelated fields should be dropped")
		}
	})

	t.Run("projects setting update fields", func(t *testing.T) {
		a := &AuditLog{
			ActionType: ActionSettingUpdate,
			Details: map[string]any{
				"setting":  "prefix",
				"oldValue": "!",
				"newValue": "?",
			},
		}

		got := a.FormatDetails()
		if len(got) != 3 {
			t.Errorf("expected 3 fields, got %v", got)
		}
	})

	t.Run("unknown action passes details through", func(t *testing.T) {
		a := &AuditLog{
			ActionType: ActionWarn,
			Details:    map[string]any{"anything": true},
		}

		got := a.FormatDetails()
		if got["anything"] != true {
			t.Errorf("expected passthrough, got %v", got)
		}
	})

	t.Run("nil details yields empty map", func(t *testing.T) {
		a := &AuditLog{ActionType: ActionMemberBan}
		if got := a.FormatDetails(); got == nil {
			t.Error("expected empty map, got nil")
		}
	})
}

func TestSpamLogFormatDetails(t *testing.T) {
	t.Run("projects message spam fields", func(t *testing.T) {
		s := &SpamLog{
			DetectionType: DetectMessageSpam,
			Details: map[string]any{
				"messageCount": 12,
				"timeWindow":   5,
				"threshold":    5,
				"noise":        "dropped",
			},
		}

		got := s.FormatDetails()
		if got["messageCount"] != 12 {
			t.Errorf("unexpected projection: %v", got)
		}
		if _, ok := got["noise"]; ok {
			t.Error("unrelated fields should be dropped")
		}
	})

	t.Run("raid detections share the join projection", func(t *testing.T) {
		for _, dt := range []DetectionType{DetectRaidAttempt, DetectSuspiciousJoin} {
			s := &SpamLog{
				DetectionType: dt,
				Details:       map[string]any{"joinCount": 20, "accountAge": 1},
			}
			got := s.FormatDetails()
			if got["joinCount"] != 20 {
				t.Errorf("%s: unexpected projection: %v", dt, got)
			}
		}
	})

	t.Run("other detection passes details through", func(t *testing.T) {
		s := &SpamLog{
			DetectionType: DetectOther,
			Details:       map[string]any{"custom": "kept"},
		}
		if got := s.FormatDetails(); got["custom"] != "kept" {
			t.Errorf("expected passthrough, got %v", got)
		}
	})
}
