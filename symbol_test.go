package folio

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"aapl", "AAPL"},
		{" msft ", "MSFT"},
		{"brk.b", "BRKB"},
		{"005930", "005930"},
		{"삼성전자", "삼성전자"},
		{"kodex 200", "KODEX200"},
		{"$%^", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := NormalizeSymbol(tc.in); got != tc.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
