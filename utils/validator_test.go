package utils

import "testing"

type signupForm struct {
	Email    string  `validate:"required,email"`
	Password string  `validate:"required,pwdmin"`
	Confirm  string  `validate:"eqfield=Password"`
	Wallet   string  `validate:"walletok"`
	Amount   float64 `validate:"required"`
}

func TestValidateStructOK(t *testing.T) {
	f := signupForm{
		Email:    "trader@example.com",
		Password: "hunter22",
		Confirm:  "hunter22",
		Wallet:   "TXk3PHjtxCmVy2BfSKqLTcVZ8ChV4pVwGt",
		Amount:   1000,
	}
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	cases := []struct {
		name string
		f    signupForm
	}{
		{"missing email", signupForm{Password: "hunter22", Confirm: "hunter22", Amount: 1}},
		{"bad email", signupForm{Email: "not-an-email", Password: "hunter22", Confirm: "hunter22", Amount: 1}},
		{"short password", signupForm{Email: "a@b.co", Password: "abc", Confirm: "abc", Amount: 1}},
		{"mismatched confirm", signupForm{Email: "a@b.co", Password: "hunter22", Confirm: "other", Amount: 1}},
		{"bad wallet", signupForm{Email: "a@b.co", Password: "hunter22", Confirm: "hunter22", Wallet: "x!", Amount: 1}},
		{"zero amount", signupForm{Email: "a@b.co", Password: "hunter22", Confirm: "hunter22", Amount: 0}},
	}
	for _, c := range cases {
		if err := ValidateStruct(&c.f); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
