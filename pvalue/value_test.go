/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pvalue

import (
	"testing"
)

func TestValueType(t *testing.T) {
	var (
		values = []Value{
			String("abc"),
			Integer(42),
			Number(1.5),
			Boolean(true),
			Bytes([]byte{1, 2}),
			Nil,
		}
		types = []DataType{
			TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeBytes, TypeNil,
		}
	)

	for i, v := range values {
		if v.Type() != types[i] {
			t.Errorf("FAIL value %s type: %s expected: %s", v, v.Type(), types[i])
		}
	}

	// the zero Value should be Nil
	var zero Value
	if !zero.IsNil() {
		t.Error("FAIL zero Value is not Nil")
	}
	if !zero.Equal(Nil) {
		t.Error("FAIL zero Value not equal to Nil")
	}
}

func TestValueEqual(t *testing.T) {
	var (
		equalPairs = [][2]Value{
			{String("x"), String("x")},
			{Integer(1), Integer(1)},
			{Number(1.5), Number(1.5)},
			{Boolean(false), Boolean(false)},
			{Bytes([]byte("ab")), Bytes([]byte("ab"))},
			{Nil, Nil},
		}
		unequalPairs = [][2]Value{
			{String("x"), String("y")},
			{Integer(1), Integer(2)},
			{Integer(1), Number(1)},
			{Boolean(true), Integer(1)},
			{Bytes([]byte("ab")), Bytes([]byte("ac"))},
			{Nil, Integer(0)},
			{Nil, String("")},
		}
	)

	for _, pair := range equalPairs {
		if !pair[0].Equal(pair[1]) {
			t.Errorf("FAIL %s not equal to %s", pair[0], pair[1])
		}
	}
	for _, pair := range unequalPairs {
		if pair[0].Equal(pair[1]) {
			t.Errorf("FAIL %s equal to %s", pair[0], pair[1])
		}
	}
}

func TestValueAs(t *testing.T) {
	if s, ok := String("x").AsString(); !ok || s != "x" {
		t.Errorf("FAIL AsString: %q %t", s, ok)
	}
	if i, ok := Integer(7).AsInteger(); !ok || i != 7 {
		t.Errorf("FAIL AsInteger: %d %t", i, ok)
	}
	if _, ok := Integer(7).AsString(); ok {
		t.Error("FAIL AsString on Integer reported ok")
	}
	if _, ok := Nil.AsBytes(); ok {
		t.Error("FAIL AsBytes on Nil reported ok")
	}
}

// engine round-trip: FromEngine(v.ToEngine()) restores v, except Boolean
// which collapses to Integer 0/1 because the engine has no boolean type
func TestEngineRoundTrip(t *testing.T) {
	var (
		unchanged = []Value{
			String("text"),
			Integer(-3),
			Number(2.25),
			Bytes([]byte{0, 255}),
			Nil,
		}
	)

	for _, v := range unchanged {
		back, err := FromEngine(v.ToEngine())
		if err != nil {
			t.Errorf("FAIL FromEngine %s: %s", v, err)
			continue
		}
		if !back.Equal(v) {
			t.Errorf("FAIL round trip: %s became %s", v, back)
		}
	}

	// Boolean collapses to Integer
	for _, b := range []bool{false, true} {
		var expected int64
		if b {
			expected = 1
		}
		back, err := FromEngine(Boolean(b).ToEngine())
		if err != nil {
			t.Fatalf("FAIL FromEngine Boolean(%t): %s", b, err)
		}
		if !back.Equal(Integer(expected)) {
			t.Errorf("FAIL Boolean(%t) round trip: %s expected: Integer(%d)", b, back, expected)
		}
	}
}

func TestFromEngineBadUTF8(t *testing.T) {
	if _, err := FromEngine(string([]byte{0xff, 0xfe})); err == nil {
		t.Error("FAIL FromEngine accepted invalid UTF-8 text")
	}
}

func TestFromEngineUnknownType(t *testing.T) {
	if _, err := FromEngine(struct{}{}); err == nil {
		t.Error("FAIL FromEngine accepted a struct value")
	}
}
