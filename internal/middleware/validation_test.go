package middleware

import "testing"

func TestValidateChannelID(t *testing.T) {
	if id, msg := ValidateChannelID("UC_x5XG1OV2P6uZZ5FSM9Ttw"); msg != "" || id == "" {
		t.Errorf("valid channel ID rejected: %q", msg)
	}
	if _, msg := ValidateChannelID(""); msg == "" {
		t.Error("empty channel ID should be rejected")
	}
	if _, msg := ValidateChannelID("bad id with spaces"); msg == "" {
		t.Error("channel ID with spaces should be rejected")
	}
	if _, msg := ValidateChannelID("  UC123  "); msg != "" {
		t.Errorf("whitespace should be trimmed, got %q", msg)
	}
}

func TestValidateReportID(t *testing.T) {
	if _, msg := ValidateReportID("8a2b6c1e-4f3d-4a5b-9c8d-7e6f5a4b3c2d"); msg != "" {
		t.Errorf("valid UUID rejected: %q", msg)
	}
	if _, msg := ValidateReportID("not-a-uuid"); msg == "" {
		t.Error("malformed UUID should be rejected")
	}
	if _, msg := ValidateReportID(""); msg == "" {
		t.Error("empty report ID should be rejected")
	}
}

func TestValidateYearMonth(t *testing.T) {
	if msg := ValidateYearMonth(2024, 2); msg != "" {
		t.Errorf("2024-02 rejected: %q", msg)
	}
	if msg := ValidateYearMonth(2024, 13); msg == "" {
		t.Error("month 13 should be rejected")
	}
	if msg := ValidateYearMonth(2024, 0); msg == "" {
		t.Error("month 0 should be rejected")
	}
	if msg := ValidateYearMonth(1999, 6); msg == "" {
		t.Error("pre-2005 year should be rejected")
	}
}

func TestValidateEmail(t *testing.T) {
	if _, msg := ValidateEmail("ops@example.com"); msg != "" {
		t.Errorf("valid email rejected: %q", msg)
	}
	if _, msg := ValidateEmail("not-an-email"); msg == "" {
		t.Error("malformed email should be rejected")
	}
}

func TestSanitizePath(t *testing.T) {
	cases := map[string]string{
		"/api/channels/UC123":      "/api/channels/:channelId",
		"/api/reports/8a2b6c1e":    "/api/reports/:id",
		"/api/reports/generate":    "/api/reports/generate",
		"/api/reports/stats":       "/api/reports/stats",
		"/api/admin/users/abc-def": "/api/admin/users/:id",
		"/health/live":             "/health/live",
	}
	for in, want := range cases {
		if got := sanitizePath(in); got != want {
			t.Errorf("sanitizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
