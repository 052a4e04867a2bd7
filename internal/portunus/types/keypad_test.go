package types

import (
	"testing"
	"time"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   byte
		want Key
		ok   bool
	}{
		{'0', '0', true},
		{'9', '9', true},
		{'A', KeyA, true},
		{'d', KeyD, true},
		{'*', KeyStar, true},
		{'#', KeyHash, true},
		{'e', 0, false},
		{' ', 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseKey(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseKey(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsControl(t *testing.T) {
	for _, row := range Layout {
		for _, k := range row {
			want := k == KeyA || k == KeyB || k == KeyC || k == KeyD || k == KeyStar
			if k.IsControl() != want {
				t.Errorf("%s.IsControl() = %v, want %v", k, k.IsControl(), want)
			}
		}
	}
}

func TestNewActivityEntry(t *testing.T) {
	at := mustTime(t, "2023-11-09T08:05:03Z")
	e := NewActivityEntry(StatusPasswordReset, at)
	if e.Date != "11-09-23" || e.Time != "08:05:03" {
		t.Fatalf("got %s %s", e.Date, e.Time)
	}
}

func TestAuthResult(t *testing.T) {
	if r := CredentialHash("abc"); r.Kind != AuthCredentialHash || r.Hash != "abc" {
		t.Fatalf("CredentialHash = %+v", r)
	}
	if Granted().Hash != "" || Denied().Kind != AuthDenied || Created().Kind != AuthCreated {
		t.Fatal("constructors disagree with kinds")
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return at
}
