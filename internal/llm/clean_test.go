package llm

import (
	"strings"
	"testing"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced json block",
			in:   "```json\n{\"summary\": \"ok\"}\n```",
			want: `{"summary": "ok"}`,
		},
		{
			name: "fence without language tag",
			in:   "```\n{\"summary\": \"ok\"}\n```",
			want: `{"summary": "ok"}`,
		},
		{
			name: "preamble and postamble",
			in:   "Here is the analysis:\n{\"summary\": \"ok\"}\nHope this helps.",
			want: `{"summary": "ok"}`,
		},
		{
			name: "multiple fences collapse",
			in:   "```json\n{\"a\":\n```\n```json\n1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "empty input",
			in:   "   ",
			want: "",
		},
		{
			name: "no braces",
			in:   "no json here",
			want: "no json here",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanModelJSON(tc.in); got != tc.want {
				t.Fatalf("CleanModelJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeObjectFallbacks(t *testing.T) {
	direct := `{"summary":"all good"}`
	m, raw, err := DecodeObject(direct, nil)
	if err != nil {
		t.Fatalf("direct decode failed: %v", err)
	}
	if m["summary"] != "all good" {
		t.Fatalf("summary = %v", m["summary"])
	}
	if string(raw) != direct {
		t.Fatalf("raw = %q", raw)
	}

	fenced := "Sure, here you go:\n```json\n{\"summary\":\"cleaned\"}\n```\nDone."
	m, _, err = DecodeObject(fenced, nil)
	if err != nil {
		t.Fatalf("fenced decode failed: %v", err)
	}
	if m["summary"] != "cleaned" {
		t.Fatalf("summary = %v", m["summary"])
	}

	if _, _, err := DecodeObject("nothing to parse", nil); err == nil {
		t.Fatal("expected error for non-JSON input")
	} else if !strings.Contains(err.Error(), "no JSON object") {
		t.Fatalf("unexpected error: %v", err)
	}
}
