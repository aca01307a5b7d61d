package banking

import (
	"encoding/json"
	"testing"
)

func TestMoneyTravelsAsNumber(t *testing.T) {
	b, err := json.Marshal(Balance{AccountNumber: "ACC1", Balance: MustMoney("1500.50"), Name: "Ann"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"accountNumber":"ACC1","balance":1500.5,"name":"Ann"}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestMoneyAcceptsNumbersStringsAndNull(t *testing.T) {
	var a struct {
		X Money `json:"x"`
		Y Money `json:"y"`
		Z Money `json:"z"`
	}
	if err := json.Unmarshal([]byte(`{"x": 12.30, "y": "7", "z": null}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !a.X.Equal(MustMoney("12.3").Decimal) {
		t.Fatalf("x = %s", a.X)
	}
	if !a.Y.Equal(MustMoney("7").Decimal) {
		t.Fatalf("y = %s", a.Y)
	}
	if !a.Z.IsZero() {
		t.Fatalf("z = %s, want zero", a.Z)
	}
}

func TestFilters(t *testing.T) {
	users := []User{{ID: 1, Role: "ADMIN"}, {ID: 2, Role: "CLIENT"}, {ID: 3, Role: "CLIENT"}}
	if got := ClientUsers(users); len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected client users: %+v", got)
	}

	accounts := []Account{{ID: 1, IsActive: true}, {ID: 2}}
	if got := ActiveAccounts(accounts); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected active accounts: %+v", got)
	}
}
