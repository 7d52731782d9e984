package handlers

import "testing"

func TestIsLocalPath(t *testing.T) {
	tests := map[string]bool{
		"/docs/core-apis/streams": true,
		"/search?q=x":             true,
		"":                        false,
		"docs":                    false,
		"//evil.example/x":        false,
		`/\evil.example`:          false,
		"https://evil.example":    false,
	}
	for in, want := range tests {
		if got := isLocalPath(in); got != want {
			t.Errorf("isLocalPath(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDetermineMode(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]componentStatus
		want       string
	}{
		{
			name: "all ok",
			components: map[string]componentStatus{
				"content":  {OK: true},
				"sessions": {OK: true},
				"redis":    {OK: true},
			},
			want: "optimal",
		},
		{
			name: "redis disabled",
			components: map[string]componentStatus{
				"content":  {OK: true},
				"sessions": {OK: true},
				"redis":    {Mode: "disabled"},
			},
			want: "optimal",
		},
		{
			name: "redis down",
			components: map[string]componentStatus{
				"content": {OK: true},
				"redis":   {Mode: "degraded"},
			},
			want: "degraded",
		},
		{
			name: "no content",
			components: map[string]componentStatus{
				"content": {},
				"redis":   {OK: true},
			},
			want: "critical",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineMode(tt.components); got != tt.want {
				t.Errorf("determineMode() = %q, want %q", got, tt.want)
			}
		})
	}
}
