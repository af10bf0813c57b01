package enums

import "testing"

func TestParsePromotionKind(t *testing.T) {
	kind, err := ParsePromotionKind("FLASH_SALE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != PromotionKindFlashSale {
		t.Fatalf("expected flash sale, got %s", kind)
	}
	if _, err := ParsePromotionKind("BOGO"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestPromotionStatusRankFollowsLifecycle(t *testing.T) {
	if !(PromotionStatusUpcoming.Rank() < PromotionStatusActive.Rank() &&
		PromotionStatusActive.Rank() < PromotionStatusEnded.Rank()) {
		t.Fatalf("lifecycle ranks out of order")
	}
	if PromotionStatus("PAUSED").Rank() != -1 {
		t.Fatalf("unknown status should rank -1")
	}
}

func TestCurrencyMinorUnits(t *testing.T) {
	cases := map[Currency]int32{
		CurrencyUSD:     2,
		CurrencyJPY:     0,
		Currency("XXX"): 2,
	}
	for currency, want := range cases {
		if got := currency.MinorUnits(); got != want {
			t.Fatalf("%s: expected %d minor units, got %d", currency, want, got)
		}
	}
}

func TestParseCurrencyIgnoresCase(t *testing.T) {
	currency, err := ParseCurrency(" eur ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if currency != CurrencyEUR {
		t.Fatalf("expected EUR, got %s", currency)
	}
}
