package numbers

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{"0", "0", false},
		{"0000", "0", false},
		{"0001", "1", false},
		{"455", "455", false},
		{"", "", true},
		{"12a", "", true},
		{"-1", "", true},
	}
	for _, c := range cases {
		n, err := Parse(c.in)
		if c.err {
			if !errors.Is(err, ErrNotNumber) {
				t.Fatalf("Parse(%q) expected ErrNotNumber, got %v", c.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", c.in, err)
		}
		if n.String() != c.want {
			t.Fatalf("Parse(%q) = %s, want %s", c.in, n, c.want)
		}
	}
}

func TestNumber_ZeroValue(t *testing.T) {
	var n Number
	if n.String() != "0" || n.Cmp(MustParse("000")) != 0 {
		t.Fatalf("zero value should equal 0, got %s", n)
	}
}

func TestNumber_Cmp(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"9", "10", -1},
		{"10", "9", 1},
		{"455", "456", -1},
		{"123456789012345678901234567890", "99", 1},
		{"007", "7", 0},
	}
	for _, c := range cases {
		if got := MustParse(c.a).Cmp(MustParse(c.b)); got != c.want {
			t.Fatalf("Cmp(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNumber_Uint64(t *testing.T) {
	if v, ok := MustParse("18446744073709551615").Uint64(); !ok || v != 18446744073709551615 {
		t.Fatalf("max uint64 should fit, got %d %v", v, ok)
	}
	if _, ok := MustParse("18446744073709551616").Uint64(); ok {
		t.Fatalf("max uint64 + 1 should not fit")
	}
	if FromUint64(42).String() != "42" {
		t.Fatalf("FromUint64 round trip failed")
	}
}

func TestNumber_JSON(t *testing.T) {
	in := []Number{MustParse("0"), MustParse("123456789012345678901234567890")}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[0,123456789012345678901234567890]" {
		t.Fatalf("unexpected JSON %s", b)
	}
	var out []Number
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[1].Cmp(in[1]) != 0 {
		t.Fatalf("JSON round trip mismatch: %v", Strings(out))
	}
}

func TestSet_Dedup(t *testing.T) {
	s := NewSet()
	if !s.Add(MustParse("23")) {
		t.Fatalf("first add should report new")
	}
	if s.Add(MustParse("023")) {
		t.Fatalf("equal value with leading zero should not be new")
	}
	s.Add(MustParse("5"))
	if s.Len() != 2 || !s.Has(FromUint64(5)) {
		t.Fatalf("unexpected set contents: %v", Strings(s.Sorted()))
	}
	got := Strings(s.Sorted())
	if got[0] != "5" || got[1] != "23" {
		t.Fatalf("Sorted() = %v, want [5 23]", got)
	}
}

func TestAccumulator_ZeroValueUsable(t *testing.T) {
	var a Accumulator
	_, _ = a.WriteString("ab1")
	_, _ = a.Write([]byte("2cd"))
	if got := a.Numbers(); len(got) != 1 || got[0].String() != "12" {
		t.Fatalf("split run not joined: %v", Strings(got))
	}
	_, _ = a.WriteString("7")
	if len(a.Numbers()) != 1 {
		t.Fatalf("open run must not be visible before Close")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if a.Runs() != 2 || len(a.Numbers()) != 2 {
		t.Fatalf("expected 2 runs and 2 values, got runs=%d values=%v", a.Runs(), Strings(a.Numbers()))
	}
}
