package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name       string
		direction  string
		magnitude  string
		wantDir    Direction
		wantAmount string
	}{
		{"debit negates", "debit", "100", DirectionDebit, "-100"},
		{"credit stays positive", "credit", "300", DirectionCredit, "300"},
		{"debit abs of negative input", "debit", "-45.50", DirectionDebit, "-45.5"},
		{"credit abs of negative input", "credit", "-45.50", DirectionCredit, "45.5"},
		{"zero credit", "credit", "0", DirectionCredit, "0"},
		{"zero debit", "debit", "0", DirectionDebit, "0"},
		{"bogus direction coerced to debit", "bogus", "50", DirectionDebit, "-50"},
		{"empty direction coerced to debit", "", "25", DirectionDebit, "-25"},
		{"uppercase token is not recognized", "CREDIT", "10", DirectionDebit, "-10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir, amt := Normalize(tc.direction, decimal.RequireFromString(tc.magnitude))
			if dir != tc.wantDir {
				t.Fatalf("direction: got %q, want %q", dir, tc.wantDir)
			}
			if want := decimal.RequireFromString(tc.wantAmount); !amt.Equal(want) {
				t.Fatalf("amount: got %s, want %s", amt, want)
			}
		})
	}
}

func TestNormalizeSignInvariant(t *testing.T) {
	// direction = debit <=> amount <= 0 and direction = credit <=> amount >= 0,
	// whatever the inputs look like.
	directions := []string{"debit", "credit", "payment", ""}
	magnitudes := []string{"0", "1", "-1", "99.99", "-0.01"}
	for _, d := range directions {
		for _, m := range magnitudes {
			dir, amt := Normalize(d, decimal.RequireFromString(m))
			switch dir {
			case DirectionDebit:
				if amt.Sign() > 0 {
					t.Fatalf("Normalize(%q, %s): debit with positive amount %s", d, m, amt)
				}
			case DirectionCredit:
				if amt.Sign() < 0 {
					t.Fatalf("Normalize(%q, %s): credit with negative amount %s", d, m, amt)
				}
			default:
				t.Fatalf("Normalize(%q, %s): unexpected direction %q", d, m, dir)
			}
		}
	}
}

func TestParseMagnitude(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain number", `50`, "50"},
		{"decimal number", `45.5`, "45.5"},
		{"quoted number", `"120.75"`, "120.75"},
		{"negative number", `-75`, "-75"},
		{"empty string", `""`, "0"},
		{"garbage", `"banana"`, "0"},
		{"null", `null`, "0"},
		{"missing", ``, "0"},
		{"nan", `"NaN"`, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseMagnitude([]byte(tc.raw))
			if want := decimal.RequireFromString(tc.want); !got.Equal(want) {
				t.Fatalf("got %s, want %s", got, want)
			}
		})
	}
}
