package utils

import "testing"

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"  User@Example.COM ", "user@example.com"},
		{"plain@example.com", "plain@example.com"},
		{"<b>evil</b>@example.com", "evil@example.com"},
		{"tab\t@example.com", "tab@example.com"},
	}

	for _, tt := range tests {
		if got := SanitizeEmail(tt.in); got != tt.want {
			t.Fatalf("SanitizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	if got := SanitizeString("  <script>x</script>  "); got != "&lt;script&gt;x&lt;/script&gt;" {
		t.Fatalf("SanitizeString escaped form mismatch: %q", got)
	}
}
