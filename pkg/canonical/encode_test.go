package canonical

import (
	"testing"
)

func TestEncodeScalars(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(0), "0"},
		{Int(-42), "-42"},
		{String("hi"), `"hi"`},
	}
	for _, c := range cases {
		got, err := Encode(c.v)
		if err != nil {
			t.Fatalf("Encode(%v): %v", c.v, err)
		}
		if string(got) != c.want {
			t.Fatalf("Encode(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestEncodeMapKeysSorted(t *testing.T) {
	v := NewMapBuilder().
		Set("zeta", Int(1)).
		Set("alpha", Int(2)).
		Set("mid", Int(3)).
		Build()

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"alpha":2,"mid":3,"zeta":1}`
	if string(got) != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeMapOrderIndependentInput(t *testing.T) {
	a := NewMapBuilder().Set("a", Int(1)).Set("b", Int(2)).Build()
	b := NewMapBuilder().Set("b", Int(2)).Set("a", Int(1)).Build()

	ea, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode(a): %v", err)
	}
	eb, err := Encode(b)
	if err != nil {
		t.Fatalf("Encode(b): %v", err)
	}
	if string(ea) != string(eb) {
		t.Fatalf("encodings differ by key-insertion order: %q vs %q", ea, eb)
	}
}

func TestEncodeArray(t *testing.T) {
	v := Array(Int(1), String("x"), Bool(true), Null())
	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `[1,"x",true,null]`
	if string(got) != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeStringEscaping(t *testing.T) {
	v := String("a\"b\\c\nd\te")
	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `"a\"b\\c\nd\te"`
	if string(got) != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeControlCharacterEscape(t *testing.T) {
	v := String("\x01")
	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "\"\\u0001\""
	if string(got) != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeRejectsUnsafeInt(t *testing.T) {
	if _, err := Encode(Int(MaxSafeInt + 1)); err == nil {
		t.Fatalf("expected error encoding an out-of-range integer")
	}
	if _, err := Encode(Int(MinSafeInt - 1)); err == nil {
		t.Fatalf("expected error encoding an out-of-range integer")
	}
	if _, err := Encode(Int(MaxSafeInt)); err != nil {
		t.Fatalf("Encode(MaxSafeInt): %v", err)
	}
}

func TestEncodeNestedDeterministic(t *testing.T) {
	build := func() Value {
		return NewMapBuilder().
			Set("outer", Array(
				NewMapBuilder().Set("y", Int(2)).Set("x", Int(1)).Build(),
			)).
			Set("flag", Bool(false)).
			Build()
	}
	a, err := Encode(build())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(build())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("repeated encoding of an equivalent structure differs: %q vs %q", a, b)
	}
	want := `{"flag":false,"outer":[{"x":1,"y":2}]}`
	if string(a) != want {
		t.Fatalf("Encode() = %q, want %q", a, want)
	}
}
