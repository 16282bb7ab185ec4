package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

type budgetInput struct {
	Category string `json:"category" validate:"required"`
	Amount   string `json:"amount" validate:"required,amount"`
	Period   string `json:"period" validate:"omitempty,period"`
}

type txnInput struct {
	Category string `json:"category" validate:"required,category"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	err := newValidator().Struct(credentials{Email: "nope", Password: "123"})
	d := ToDetails(err)
	if d["email"] != "must be a valid email" {
		t.Fatalf("email detail = %q", d["email"])
	}
	if d["password"] != "must be between 6 and 72 characters long" {
		t.Fatalf("password detail = %q", d["password"])
	}
}

func TestLedgerTags(t *testing.T) {
	v := newValidator()
	if err := v.Struct(budgetInput{Category: "Food", Amount: "12.50", Period: "Monthly"}); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}
	d := ToDetails(v.Struct(budgetInput{Category: "Food", Amount: "-1", Period: "Daily"}))
	if d["amount"] == "" || d["period"] == "" {
		t.Fatalf("details = %v", d)
	}
	if err := v.Struct(txnInput{Category: "Junk Food (Non-Essential)"}); err != nil {
		t.Fatalf("known category rejected: %v", err)
	}
	if d := ToDetails(v.Struct(txnInput{Category: "Snacks"})); d["category"] != "must be a known transaction category" {
		t.Fatalf("details = %v", d)
	}
}

func TestToDetailsBadJSON(t *testing.T) {
	var c credentials
	err := json.Unmarshal([]byte(`{"email": 5}`), &c)
	if d := ToDetails(err); d["payload"] != "invalid json" {
		t.Fatalf("details = %v", d)
	}
	if ToDetails(nil) != nil {
		t.Fatalf("nil error should give nil details")
	}
}
