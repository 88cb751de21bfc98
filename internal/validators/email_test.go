package validators

import (
	"context"
	"testing"
)

func TestIsEmailDomainValid_Malformed(t *testing.T) {
	for _, email := range []string{"sin-arroba", "usuario@"} {
		if IsEmailDomainValid(context.Background(), email) {
			t.Fatalf("%q should be rejected", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Fatalf("got %q", got)
	}
}
