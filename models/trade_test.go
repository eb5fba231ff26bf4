package models

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{TradeStatusPending, TradeStatusPaid},
		{TradeStatusPending, TradeStatusCancelled},
		{TradeStatusPaid, TradeStatusCompleted},
		{TradeStatusPaid, TradeStatusCancelled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{TradeStatusPending, TradeStatusCompleted},
		{TradeStatusPaid, TradeStatusPending},
		{TradeStatusCompleted, TradeStatusCancelled},
		{TradeStatusCompleted, TradeStatusPaid},
		{TradeStatusCancelled, TradeStatusPending},
		{TradeStatusCancelled, TradeStatusCompleted},
	}
	for _, tr := range denied {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be denied", tr[0], tr[1])
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(TradeStatusPending) || IsTerminal(TradeStatusPaid) {
		t.Error("PENDING and PAID are not terminal")
	}
	if !IsTerminal(TradeStatusCompleted) || !IsTerminal(TradeStatusCancelled) {
		t.Error("COMPLETED and CANCELLED are terminal")
	}
}

func TestCryptoAmount(t *testing.T) {
	cases := []struct {
		fiat, rate, want float64
	}{
		{1000, 83.0, 12.048193},
		{5000, 83.0, 60.240964},
		{100, 90.5, 1.104972},
		{0, 83.0, 0},
	}
	for _, c := range cases {
		if got := CryptoAmount(c.fiat, c.rate); got != c.want {
			t.Errorf("CryptoAmount(%v, %v) = %v, want %v", c.fiat, c.rate, got, c.want)
		}
	}
}

func TestCryptoAmountZeroRate(t *testing.T) {
	if got := CryptoAmount(1000, 0); got != 0 {
		t.Errorf("expected 0 for zero rate, got %v", got)
	}
}
