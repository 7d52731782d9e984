package utils

import (
	"net/http/httptest"
	"testing"
)

func TestHostNoPort(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"1.2.3.4":         "1.2.3.4",
		"1.2.3.4:8080":    "1.2.3.4",
		"[::1]:443":       "::1",
		"[2001:db8::1]":   "2001:db8::1",
		" 10.0.0.1:1234 ": "10.0.0.1",
	}
	for in, want := range tests {
		if got := HostNoPort(in); got != want {
			t.Errorf("HostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr only", nil, false, "192.0.2.1"},
		{"proxy headers ignored when untrusted", map[string]string{"X-Forwarded-For": "203.0.113.9"}, false, "192.0.2.1"},
		{"cloudflare first", map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Forwarded-For": "203.0.113.9"}, true, "203.0.113.5"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, true, "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.7"}, true, "203.0.113.7"},
		{"trusted without headers", nil, true, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "192.0.2.1:5555"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.4 ", "garbage", "", "2001:db8::/32"})

	if m.IsEmpty() {
		t.Fatal("matcher should not be empty")
	}

	tests := map[string]bool{
		"10.1.2.3":        true,
		"::ffff:10.1.2.3": true,
		"192.168.1.4":     true,
		"192.168.1.5":     false,
		"2001:db8::42":    true,
		"2001:db9::1":     false,
		"not-an-ip":       false,
		"":                false,
	}
	for ip, want := range tests {
		if got := m.Allow(ip); got != want {
			t.Errorf("Allow(%q) = %v, want %v", ip, got, want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should give an empty matcher")
	}
}
