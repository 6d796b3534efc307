package constant

import "testing"

func TestFormatParseRoundTrip(t *testing.T) {
	cases := []Constant{
		String("hello world"),
		Integer(-7),
		Unsigned(9),
		Float(3.5),
		Bool_(true),
		List_(Integer(1), String("a"), List_(String("b"), String("c"))),
	}
	for _, c := range cases {
		text := Format(c)
		got, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if Format(got) != text {
			t.Errorf("round trip mismatch: %q -> %+v -> %q", text, got, Format(got))
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse("int(not_a_number)"); err == nil {
		t.Errorf("expected error on malformed integer literal")
	}
	if _, err := Parse("list(int(1)"); err == nil {
		t.Errorf("expected error on unterminated list")
	}
}
