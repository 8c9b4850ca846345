package redis

import "testing"

func TestKeyNamespacing(t *testing.T) {
	t.Parallel()

	if got := Key("cart", "abc"); got != "fc:cart:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := CartKey("sess-1"); got != "fc:cart:sess-1" {
		t.Fatalf("unexpected cart key: %s", got)
	}
}
