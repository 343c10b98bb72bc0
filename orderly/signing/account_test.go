package signing

import (
	"regexp"
	"strings"
	"testing"
)

var accountIDShape = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func TestAccountIDShape(t *testing.T) {
	id := AccountID("0x036Cb579025d3535a0ADcD929D05481a3189714b", "woofi_pro")
	if !accountIDShape.MatchString(id) {
		t.Fatalf("account id %q is not 0x + 64 hex chars", id)
	}
}

func TestAccountIDDeterministic(t *testing.T) {
	a := AccountID("0x036Cb579025d3535a0ADcD929D05481a3189714b", "woofi_pro")
	b := AccountID("0x036Cb579025d3535a0ADcD929D05481a3189714b", "woofi_pro")
	if a != b {
		t.Fatalf("same inputs gave different ids: %s vs %s", a, b)
	}
}

func TestAccountIDDependsOnBroker(t *testing.T) {
	addr := "0x036Cb579025d3535a0ADcD929D05481a3189714b"
	if AccountID(addr, "broker_a") == AccountID(addr, "broker_b") {
		t.Fatal("different brokers must give different account ids")
	}
}

func TestAccountIDDependsOnAddress(t *testing.T) {
	a := AccountID("0x0000000000000000000000000000000000000001", "b")
	b := AccountID("0x0000000000000000000000000000000000000002", "b")
	if a == b {
		t.Fatal("different addresses must give different account ids")
	}
}

func TestAccountIDCaseInsensitiveAddress(t *testing.T) {
	lower := AccountID("0x036cb579025d3535a0adcd929d05481a3189714b", "woofi_pro")
	mixed := AccountID("0x036Cb579025d3535a0ADcD929D05481a3189714b", "woofi_pro")
	if !strings.EqualFold(lower, mixed) || lower != mixed {
		t.Fatalf("checksum casing changed the account id: %s vs %s", lower, mixed)
	}
}
