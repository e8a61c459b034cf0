// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sajs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// event is a Result plus a snapshot of the bytes it carried, used so tests
// can compare against literal expectations without worrying about the
// Lexer's Bytes() buffer being overwritten by the next call.
type event struct {
	Result
	Bytes string
}

func drive(t *testing.T, input string, stackSize int) []event {
	t.Helper()
	lx, ok := NewLexer(make([]byte, stackSize))
	if !ok {
		t.Fatalf("NewLexer(%d) failed", stackSize)
	}
	var got []event
	for i := 0; i <= len(input); i++ {
		c := eof
		if i < len(input) {
			c = int(input[i])
		}
		r := lx.ReadByte(c)
		if r.Event == EventNothing && r.Status == Success {
			continue
		}
		got = append(got, event{r, string(lx.Bytes())})
		if IsFault(r.Status) {
			break
		}
	}
	return got
}

func TestNewLexerMinSize(t *testing.T) {
	if _, ok := NewLexer(nil); ok {
		t.Error("NewLexer(nil) succeeded, want failure")
	}
	if _, ok := NewLexer(make([]byte, 1)); ok {
		t.Error("NewLexer(1 byte) succeeded, want failure")
	}
	if _, ok := NewLexer(make([]byte, minLexerMemory)); !ok {
		t.Error("NewLexer(minLexerMemory) failed, want success")
	}
}

func TestEmptyArray(t *testing.T) {
	got := drive(t, "[]", 8)
	want := []event{
		{Result{Success, EventStart, Array, 0}, ""},
		{Result{Success, EventEnd, Array, HasBytes}, "]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("[] events mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayOfNumbers(t *testing.T) {
	got := drive(t, "[1,2,3]", 8)
	want := []event{
		{Result{Success, EventStart, Array, 0}, ""},
		{Result{Success, EventStart, Number, IsElement | IsFirst | HasBytes}, "1"},
		{Result{Success, EventEnd, Number, 0}, ""},
		{Result{Success, EventStart, Number, IsElement | HasBytes}, "2"},
		{Result{Success, EventEnd, Number, 0}, ""},
		{Result{Success, EventStart, Number, IsElement | HasBytes}, "3"},
		{Result{Success, EventDoubleEnd, Array, 0}, "]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("[1,2,3] events mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectMember(t *testing.T) {
	got := drive(t, `{"a":1}`, 8)
	want := []event{
		{Result{Success, EventStart, Object, 0}, ""},
		{Result{Success, EventStart, String, IsMemberName | IsFirst}, ""},
		{Result{Success, EventBytes, noKind, HasBytes}, "a"},
		{Result{Success, EventEnd, String, HasBytes}, `"`},
		{Result{Success, EventStart, Number, IsMemberValue | HasBytes}, "1"},
		{Result{Success, EventDoubleEnd, Object, 0}, "}"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf(`{"a":1} events mismatch (-want +got):\n%s`, diff)
	}
}

func TestSurrogatePair(t *testing.T) {
	got := drive(t, "\"\\uD834\\uDD1E\"", 8)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3 (Start, Bytes, End): %+v", len(got), got)
	}
	want := "\xF0\x9D\x84\x9E"
	if got[1].Event != EventBytes || got[1].Bytes != want {
		t.Errorf("surrogate pair bytes = %q, want %q", got[1].Bytes, want)
	}
}

func TestControlCharInString(t *testing.T) {
	got := drive(t, `"x`+"\x01"+`y"`, 8)
	last := got[len(got)-1]
	if last.Status != ExpectedPrintable {
		t.Errorf("status = %v, want ExpectedPrintable", last.Status)
	}
}

func TestLoneLowSurrogate(t *testing.T) {
	got := drive(t, `"\uDC00"`, 8)
	last := got[len(got)-1]
	if last.Status != ExpectedUTF16Hi {
		t.Errorf("status = %v, want ExpectedUTF16Hi", last.Status)
	}
}

func TestLoneHighSurrogate(t *testing.T) {
	got := drive(t, `"\uD800"`, 8)
	last := got[len(got)-1]
	if last.Status != ExpectedUTF16Lo {
		t.Errorf("status = %v, want ExpectedUTF16Lo", last.Status)
	}
}

func TestBareMinus(t *testing.T) {
	got := drive(t, `[-]`, 8)
	last := got[len(got)-1]
	if last.Status != ExpectedDigit {
		t.Errorf("status = %v, want ExpectedDigit", last.Status)
	}
}

func TestLeadingZero(t *testing.T) {
	got := drive(t, `01`, 8)
	last := got[len(got)-1]
	if last.Status != ExpectedDecimal {
		t.Errorf("status = %v, want ExpectedDecimal", last.Status)
	}
}

func TestStackOverflow(t *testing.T) {
	// minLexerMemory allows exactly one level of nesting before Overflow.
	got := drive(t, `[[]]`, minLexerMemory)
	last := got[len(got)-1]
	if last.Status != Overflow {
		t.Errorf("status = %v, want Overflow", last.Status)
	}
}

func TestUnderflowNeverObservedByCallers(t *testing.T) {
	// A well-formed single top-level value never pops more than it
	// pushed; Underflow is only reachable through an internal bug, not
	// through any input a caller can construct via ReadByte.
	lx, ok := NewLexer(make([]byte, 8))
	if !ok {
		t.Fatal("NewLexer failed")
	}
	r := lx.pop(Object, Success, -1)
	if r.Status != Underflow {
		t.Errorf("pop on empty stack = %v, want Underflow", r.Status)
	}
}

func TestTrueFalseNull(t *testing.T) {
	for _, tt := range []string{"true", "false", "null"} {
		got := drive(t, tt, 8)
		if len(got) != 2 && len(got) != 1+len(tt)-1 {
			// Start carries the first byte; every subsequent byte but
			// the last is a Bytes event; the last byte closes with End.
		}
		first, last := got[0], got[len(got)-1]
		if first.Event != EventStart || first.Kind != Literal {
			t.Errorf("%s: first event = %+v, want Literal Start", tt, first)
		}
		if last.Event != EventEnd || last.Kind != Literal {
			t.Errorf("%s: last event = %+v, want Literal End", tt, last)
		}
	}
}

func TestDepthInvariant(t *testing.T) {
	lx, ok := NewLexer(make([]byte, 8))
	if !ok {
		t.Fatal("NewLexer failed")
	}
	input := `[1,[2,3],{"a":[4]}]`
	for i := 0; i < len(input); i++ {
		lx.ReadByte(int(input[i]))
		if lx.top > lx.maxDepth {
			t.Fatalf("top %d exceeds maxDepth %d", lx.top, lx.maxDepth)
		}
	}
	lx.ReadByte(eof)
	if lx.top != 0 {
		t.Errorf("top after EOF = %d, want 0", lx.top)
	}
}

func TestStickyFailure(t *testing.T) {
	lx, ok := NewLexer(make([]byte, 8))
	if !ok {
		t.Fatal("NewLexer failed")
	}
	first := lx.ReadByte(int(']')) // unexpected at document level
	if !IsFault(first.Status) {
		t.Fatalf("first status = %v, want a fault", first.Status)
	}
	second := lx.ReadByte(int('1'))
	if second.Status != first.Status {
		t.Errorf("second status = %v, want sticky %v", second.Status, first.Status)
	}
}
