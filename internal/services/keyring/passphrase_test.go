package keyring

import "testing"

func TestIsSecurePassphrase(t *testing.T) {
	cases := map[string]bool{
		"":                 false,
		"apple":            false,
		"alllowercase123!": false,
		"NoDigitsHere!!!!": false,
		"NoSymbols123456":  false,
		"Correct-Horse-42": true,
		"Ünïcödé-Pässw0rd": true,
	}
	for in, want := range cases {
		if got := isSecurePassphrase([]byte(in)); got != want {
			t.Fatalf("isSecurePassphrase(%q) = %v, want %v", in, got, want)
		}
	}
}
