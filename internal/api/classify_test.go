package api

import (
	"net/http"
	"testing"
	"time"
)

func TestClassifier_Classify(t *testing.T) {
	cl := NewClassifier()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantKind   Kind
		wantNil    bool
	}{
		{"success 200", 200, `{"success": true}`, 0, true},
		{"success 201", 201, `{}`, 0, true},
		{"unauthorized", 401, `{"message": "invalid API key"}`, KindAuthentication, false},
		{"forbidden", 403, `{"error": "forbidden"}`, KindAuthentication, false},
		{"payment required", 402, `{"message": "insufficient credits", "required_credits": 25}`, KindInsufficientCredits, false},
		{"rate limited", 429, `{"error": "rate limit exceeded"}`, KindRateLimit, false},
		{"internal error", 500, `{"error": "internal error"}`, KindServer, false},
		{"bad gateway", 502, `{"error": "bad gateway"}`, KindServer, false},
		{"insufficient storage", 507, `{"error": "storage"}`, KindServer, false},
		{"bad request", 400, `{"error": "bad request"}`, KindUnknown, false},
		{"not found", 404, `{"error": "not found"}`, KindUnknown, false},
		{"credits marker on other status", 400, `{"error": "not enough credits", "required_credits": 10}`, KindInsufficientCredits, false},
		{"non-JSON body", 500, `internal server error`, KindServer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cl.Classify(tt.statusCode, http.Header{}, []byte(tt.body))
			if tt.wantNil {
				if err != nil {
					t.Fatalf("Classify() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Classify() = nil, want error")
			}
			if err.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", err.Kind, tt.wantKind)
			}
			if err.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestClassifier_RequiredCredits(t *testing.T) {
	cl := NewClassifier()

	err := cl.Classify(402, http.Header{}, []byte(`{"message": "insufficient credits", "required_credits": 25}`))
	if err == nil {
		t.Fatal("Classify() = nil, want error")
	}
	if err.Required != 25 {
		t.Errorf("Required = %d, want 25", err.Required)
	}

	// Legacy key spelling
	err = cl.Classify(402, http.Header{}, []byte(`{"message": "insufficient credits", "required": 40}`))
	if err == nil {
		t.Fatal("Classify() = nil, want error")
	}
	if err.Required != 40 {
		t.Errorf("Required = %d, want 40", err.Required)
	}
}

func TestClassifier_CustomMarkers(t *testing.T) {
	cl := &Classifier{CreditsMarkers: []string{"credits_needed"}}

	err := cl.Classify(400, http.Header{}, []byte(`{"error": "out of credits", "credits_needed": 7}`))
	if err == nil {
		t.Fatal("Classify() = nil, want error")
	}
	if err.Kind != KindInsufficientCredits {
		t.Errorf("Kind = %v, want KindInsufficientCredits", err.Kind)
	}
	if err.Required != 7 {
		t.Errorf("Required = %d, want 7", err.Required)
	}

	// Default marker keys are not recognized with a custom list.
	err = cl.Classify(400, http.Header{}, []byte(`{"error": "bad", "required_credits": 9}`))
	if err == nil {
		t.Fatal("Classify() = nil, want error")
	}
	if err.Kind != KindUnknown {
		t.Errorf("Kind = %v, want KindUnknown", err.Kind)
	}
}

func TestClassify_ErrorMessage(t *testing.T) {
	cl := NewClassifier()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message": "boom"}`, "boom"},
		{"error field", `{"error": "kapow"}`, "kapow"},
		{"message preferred over error", `{"message": "boom", "error": "kapow"}`, "boom"},
		{"raw text body", "plain failure", "plain failure"},
		{"empty JSON", `{}`, "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cl.Classify(500, http.Header{}, []byte(tt.body))
			if err == nil {
				t.Fatal("Classify() = nil, want error")
			}
			if err.Message != tt.want {
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"absent", "", 0},
		{"seconds", "5", 5 * time.Second},
		{"zero seconds", "0", 0},
		{"garbage", "soon", 0},
		{"negative", "-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.value != "" {
				header.Set("Retry-After", tt.value)
			}
			if got := parseRetryAfter(header); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseRetryAfter_HTTPDate(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", time.Now().Add(10*time.Second).UTC().Format(http.TimeFormat))

	got := parseRetryAfter(header)
	if got <= 0 || got > 10*time.Second {
		t.Errorf("parseRetryAfter(date) = %v, want in (0, 10s]", got)
	}
}

func TestClassifier_RetryAfterCarried(t *testing.T) {
	cl := NewClassifier()

	header := http.Header{}
	header.Set("Retry-After", "7")

	err := cl.Classify(429, header, []byte(`{"error": "slow down"}`))
	if err == nil {
		t.Fatal("Classify() = nil, want error")
	}
	if err.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", err.RetryAfter)
	}
	if !err.Retryable() {
		t.Error("Retryable() = false, want true")
	}
}

func TestStatusError_Retryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindAuthentication, false},
		{KindInsufficientCredits, false},
		{KindValidation, false},
		{KindUnknown, false},
		{KindRateLimit, true},
		{KindServer, true},
	}

	for _, tt := range tests {
		e := &StatusError{Kind: tt.kind}
		if got := e.Retryable(); got != tt.want {
			t.Errorf("Retryable() for kind %v = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestStatusError_ExhaustedMessage(t *testing.T) {
	e := &StatusError{Kind: KindServer, StatusCode: 503, Message: "unavailable", Exhausted: true}
	want := "API error 503: unavailable (retries exhausted)"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}
