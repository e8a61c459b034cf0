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

import "unicode/utf8"

// LexerState is one frame on the Lexer's container-nesting stack: either a
// structural position inside an object/array/the document, or a position
// inside the body of a string, number, or literal.
type LexerState byte

const (
	// Structural positions. Whitespace is skipped only in these states;
	// the grouping relies on their relative order, see isStructural.
	lsStart LexerState = iota
	lsElemFirst
	lsElemSep
	lsElemNext
	lsMemNameFirst
	lsMemNameSep
	lsMemValueStart
	lsMemSep
	lsMemNext

	// String body.
	lsString
	lsStringEsc
	lsStringEscHex
	lsStringEscLo

	// Number body.
	lsNumIntStart
	lsNumIntCont
	lsNumIntEnd
	lsNumFracStart
	lsNumFracCont
	lsNumExpStart
	lsNumExpIntStart
	lsNumExpIntCont

	// Literals.
	lsFalse
	lsNull
	lsTrue
)

// isStructural reports whether whitespace should be skipped in state s, per
// spec.md §4.1: "Whitespace ... is skipped only in structural positions
// (states ≤ MemNext)".
func (s LexerState) isStructural() bool { return s <= lsMemNext }

const eof = -1

// Lexer is a pushdown automaton over a fixed-size, caller-supplied byte
// stack. It allocates nothing after construction and holds no reference to
// its input beyond the single byte passed to each ReadByte call.
type Lexer struct {
	stack    []byte // reused caller memory; stack[i] holds a LexerState
	maxDepth int
	top      int

	value  uint32 // hex accumulator for the \u escape being parsed
	surrHi uint32 // saved high surrogate while suspended in lsStringEscLo
	length int    // nibble count (0-4) or literal-match position

	pending  Flags // flags to attach to the next Start event
	numBytes int
	byteBuf  [4]byte

	failed     bool
	failStatus Status
}

// minLexerMemory is the smallest memory that can hold the document-level
// frame plus one nested frame, per spec.md §5 ("state-record size plus one
// stack frame"). Go keeps the Lexer header off the caller's slice (see
// SPEC_FULL.md §4.1), so here the whole slice is the frame array and the minimum
// simply guarantees room for one level of nesting before Overflow.
const minLexerMemory = 2

// NewLexer constructs a Lexer using memory as its container-nesting stack.
// It returns (nil, false) if memory is smaller than minLexerMemory.
func NewLexer(memory []byte) (*Lexer, bool) {
	if len(memory) < minLexerMemory {
		return nil, false
	}
	l := &Lexer{
		stack:    memory,
		maxDepth: len(memory),
	}
	l.stack[0] = byte(lsStart)
	return l, true
}

// Bytes returns the 1-4 bytes produced by the most recent ReadByte call.
// The returned slice is valid only until the next ReadByte call.
func (l *Lexer) Bytes() []byte { return l.byteBuf[:l.numBytes] }

func (l *Lexer) top_() LexerState        { return LexerState(l.stack[l.top]) }
func (l *Lexer) setTop(s LexerState)     { l.stack[l.top] = byte(s) }
func (l *Lexer) reset(s LexerState) Result {
	l.setTop(s)
	return Result{Status: Success, Event: EventNothing}
}

func (l *Lexer) clearBytes() { l.numBytes = 0 }

func (l *Lexer) setByte1(b byte) {
	l.byteBuf[0] = b
	l.numBytes = 1
}

func (l *Lexer) setBytesN(b []byte) {
	copy(l.byteBuf[:], b)
	l.numBytes = len(b)
}

// push opens a new value frame. kind and flags describe the value being
// opened; newState is the state the new frame starts in; firstByte, if >=
// 0, is attached to the Start event as its byte buffer.
func (l *Lexer) push(kind ValueKind, flags Flags, newState LexerState, firstByte int) Result {
	if l.top+1 == l.maxDepth {
		return Result{Status: Overflow, Event: EventNothing}
	}
	l.top++
	l.setTop(newState)
	if firstByte >= 0 {
		l.setByte1(byte(firstByte))
		flags |= HasBytes
	} else {
		l.clearBytes()
	}
	return Result{Status: Success, Event: EventStart, Kind: kind, Flags: flags}
}

// pop closes the current frame with status and, if lastByte >= 0, attaches
// it to the End event's byte buffer.
func (l *Lexer) pop(kind ValueKind, status Status, lastByte int) Result {
	if l.top == 0 {
		return Result{Status: Underflow, Event: EventNothing}
	}
	l.top--
	flags := Flags(0)
	if lastByte >= 0 {
		l.setByte1(byte(lastByte))
		flags = HasBytes
	} else {
		l.clearBytes()
	}
	return Result{Status: status, Event: EventEnd, Kind: kind, Flags: flags}
}

func (l *Lexer) byteEvent(b byte) Result {
	l.setByte1(b)
	return Result{Status: Success, Event: EventBytes, Flags: HasBytes}
}

func (l *Lexer) bytesEvent(b []byte) Result {
	l.setBytesN(b)
	return Result{Status: Success, Event: EventBytes, Flags: HasBytes}
}

func fault(status Status) Result { return Result{Status: status, Event: EventNothing} }

func isDigit(c int) bool { return c >= '0' && c <= '9' }

func hexVal(c int) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func isWhitespace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// ReadByte accepts one input character as a signed integer: negative
// values denote end-of-input, values in 0..255 are byte values. It returns
// exactly one Result and does not read or buffer any further input.
func (l *Lexer) ReadByte(c int) Result {
	if l.failed {
		return fault(l.failStatus)
	}
	first := l.step(c)
	if first.Status != Retry {
		if IsFault(first.Status) {
			l.failed, l.failStatus = true, first.Status
		}
		return first
	}

	// Number-boundary protocol: dispatch the same byte again now that
	// the number's frame has already been popped.
	second := l.step(c)
	if IsFault(second.Status) {
		l.failed, l.failStatus = true, second.Status
	}
	if first.Event == EventEnd && second.Event == EventEnd {
		return Result{Status: second.Status, Event: EventDoubleEnd, Kind: second.Kind}
	}
	merged := first
	merged.Status = second.Status
	return merged
}

// step dispatches c to the handler for the current top frame. It never
// loops; Retry is produced by at most one frame (a number body state's
// pop) and is resolved by ReadByte's single extra call.
func (l *Lexer) step(c int) Result {
	state := l.top_()
	if state.isStructural() {
		if c >= 0 && isWhitespace(c) {
			return Result{Status: Success, Event: EventNothing}
		}
		return l.stepStructural(state, c)
	}
	switch {
	case state == lsString:
		return l.stepString(c)
	case state == lsStringEsc:
		return l.stepStringEsc(c)
	case state == lsStringEscHex:
		return l.stepStringEscHex(c)
	case state == lsStringEscLo:
		return l.stepStringEscLo(c)
	case state >= lsNumIntStart && state <= lsNumExpIntCont:
		return l.stepNumber(state, c)
	default:
		return l.stepLiteral(state, c)
	}
}

func (l *Lexer) stepStructural(state LexerState, c int) Result {
	switch state {
	case lsStart:
		if c < 0 {
			return Result{Status: Success, Event: EventNothing}
		}
		return l.startValue(c)
	case lsElemFirst:
		if c == ']' {
			return l.pop(Array, Success, ']')
		}
		if c < 0 {
			return fault(NoData)
		}
		l.pending = IsElement | IsFirst
		return l.startValue(c)
	case lsElemSep:
		if c < 0 {
			return fault(NoData)
		}
		l.pending = IsElement
		return l.startValue(c)
	case lsElemNext:
		switch {
		case c == ',':
			return l.reset(lsElemSep)
		case c == ']':
			return l.pop(Array, Success, ']')
		default:
			return fault(ExpectedComma)
		}
	case lsMemNameFirst:
		if c == '}' {
			return l.pop(Object, Success, '}')
		}
		if c != '"' {
			if c < 0 {
				return fault(NoData)
			}
			return fault(ExpectedQuote)
		}
		l.setTop(lsMemSep)
		return l.push(String, IsMemberName|IsFirst, lsString, -1)
	case lsMemNameSep:
		if c != '"' {
			if c < 0 {
				return fault(NoData)
			}
			return fault(ExpectedQuote)
		}
		l.setTop(lsMemSep)
		return l.push(String, IsMemberName, lsString, -1)
	case lsMemSep:
		if c == ':' {
			return l.reset(lsMemValueStart)
		}
		if c < 0 {
			return fault(NoData)
		}
		return fault(ExpectedColon)
	case lsMemValueStart:
		if c < 0 {
			return fault(NoData)
		}
		l.pending = IsMemberValue
		l.setTop(lsMemNext)
		return l.startValue(c)
	case lsMemNext:
		switch {
		case c == ',':
			return l.reset(lsMemNameSep)
		case c == '}':
			return l.pop(Object, Success, '}')
		default:
			return fault(ExpectedComma)
		}
	}
	return fault(ExpectedValue)
}

// startValue dispatches the first byte of any value. For lsElemFirst/
// lsElemSep/lsMemValueStart the container frame must already reflect its
// post-value state (the caller sets it, or leaves it for array states that
// reuse reset+push together below); lsStart has no container to update.
func (l *Lexer) startValue(c int) Result {
	flags := l.pending
	l.pending = 0
	switch {
	case c == '"':
		return l.pushValueAfterReset(String, flags, lsString, -1)
	case c == '-':
		return l.pushValueAfterReset(Number, flags, lsNumIntStart, '-')
	case c == '0':
		return l.pushValueAfterReset(Number, flags, lsNumIntEnd, '0')
	case isDigit(c):
		return l.pushValueAfterReset(Number, flags, lsNumIntCont, c)
	case c == '[':
		return l.pushValueAfterReset(Array, flags, lsElemFirst, -1)
	case c == '{':
		return l.pushValueAfterReset(Object, flags, lsMemNameFirst, -1)
	case c == 'f':
		l.length = 1
		return l.pushValueAfterReset(Literal, flags, lsFalse, 'f')
	case c == 'n':
		l.length = 1
		return l.pushValueAfterReset(Literal, flags, lsNull, 'n')
	case c == 't':
		l.length = 1
		return l.pushValueAfterReset(Literal, flags, lsTrue, 't')
	default:
		return fault(ExpectedValue)
	}
}

// pushValueAfterReset updates the enclosing container's frame (when there
// is one) to the state it should resume in once the value being opened
// here eventually closes, then pushes the value's own frame.
func (l *Lexer) pushValueAfterReset(kind ValueKind, flags Flags, newState LexerState, firstByte int) Result {
	switch l.top_() {
	case lsElemFirst, lsElemSep:
		l.setTop(lsElemNext)
	}
	return l.push(kind, flags, newState, firstByte)
}

func (l *Lexer) stepString(c int) Result {
	switch {
	case c < 0:
		return fault(NoData)
	case c == '"':
		return l.pop(String, Success, '"')
	case c == '\\':
		l.setTop(lsStringEsc)
		return Result{Status: Success, Event: EventNothing}
	case c < 0x20:
		return fault(ExpectedPrintable)
	default:
		return l.byteEvent(byte(c))
	}
}

func (l *Lexer) stepStringEsc(c int) Result {
	if c < 0 {
		return fault(NoData)
	}
	switch c {
	case '"', '\\', '/':
		l.setTop(lsString)
		return l.byteEvent(byte(c))
	case 'b':
		l.setTop(lsString)
		return l.byteEvent(0x08)
	case 'f':
		l.setTop(lsString)
		return l.byteEvent(0x0C)
	case 'n':
		l.setTop(lsString)
		return l.byteEvent(0x0A)
	case 'r':
		l.setTop(lsString)
		return l.byteEvent(0x0D)
	case 't':
		l.setTop(lsString)
		return l.byteEvent(0x09)
	case 'u':
		l.setTop(lsStringEscHex)
		l.value, l.length = 0, 0
		return Result{Status: Success, Event: EventNothing}
	default:
		return fault(ExpectedStringEscape)
	}
}

func (l *Lexer) stepStringEscHex(c int) Result {
	if c < 0 {
		return fault(NoData)
	}
	nib, ok := hexVal(c)
	if !ok {
		return fault(ExpectedHexDigit)
	}
	l.value = l.value<<4 | uint32(nib)
	l.length++
	if l.length < 4 {
		return Result{Status: Success, Event: EventNothing}
	}
	return l.finishHexEscape()
}

func (l *Lexer) finishHexEscape() Result {
	cp := l.value
	switch {
	case cp >= 0xDC00 && cp <= 0xDFFF:
		return fault(ExpectedUTF16Hi)
	case cp >= 0xD800 && cp <= 0xDBFF:
		l.surrHi = cp
		l.length = 0
		l.setTop(lsStringEscLo)
		return Result{Status: Success, Event: EventNothing}
	default:
		l.setTop(lsString)
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], rune(cp))
		return l.bytesEvent(buf[:n])
	}
}

// stepStringEscLo drives the mandatory "\uYYYY" tail following a high
// surrogate, using l.length as a small stage counter: 0 awaits '\\', 1
// awaits 'u', and values >= 2 accumulate hex nibbles into l.value exactly
// like stepStringEscHex.
func (l *Lexer) stepStringEscLo(c int) Result {
	switch l.length {
	case 0:
		if c != '\\' {
			return fault(ExpectedUTF16Lo)
		}
		l.length = 1
		return Result{Status: Success, Event: EventNothing}
	case 1:
		if c != 'u' {
			return fault(ExpectedUTF16Lo)
		}
		l.length = 2
		l.value = 0
		return Result{Status: Success, Event: EventNothing}
	default:
		if c < 0 {
			return fault(NoData)
		}
		nib, ok := hexVal(c)
		if !ok {
			return fault(ExpectedHexDigit)
		}
		l.value = l.value<<4 | uint32(nib)
		l.length++
		if l.length < 6 {
			return Result{Status: Success, Event: EventNothing}
		}
		lo := l.value
		if lo < 0xDC00 || lo > 0xDFFF {
			return fault(ExpectedUTF16Lo)
		}
		cp := (l.surrHi-0xD800)*0x400 + (lo - 0xDC00) + 0x10000
		l.setTop(lsString)
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], rune(cp))
		return l.bytesEvent(buf[:n])
	}
}

func (l *Lexer) stepNumber(state LexerState, c int) Result {
	switch state {
	case lsNumIntStart:
		switch {
		case c == '0':
			l.setTop(lsNumIntEnd)
			return l.byteEvent('0')
		case isDigit(c):
			l.setTop(lsNumIntCont)
			return l.byteEvent(byte(c))
		default:
			return fault(ExpectedDigit)
		}
	case lsNumIntEnd:
		switch {
		case c == '.':
			l.setTop(lsNumFracStart)
			return l.byteEvent('.')
		case c == 'e' || c == 'E':
			l.setTop(lsNumExpStart)
			return l.byteEvent(byte(c))
		case isDigit(c):
			return fault(ExpectedDecimal)
		default:
			return l.endNumber(c)
		}
	case lsNumIntCont:
		switch {
		case isDigit(c):
			return l.byteEvent(byte(c))
		case c == '.':
			l.setTop(lsNumFracStart)
			return l.byteEvent('.')
		case c == 'e' || c == 'E':
			l.setTop(lsNumExpStart)
			return l.byteEvent(byte(c))
		default:
			return l.endNumber(c)
		}
	case lsNumFracStart:
		if isDigit(c) {
			l.setTop(lsNumFracCont)
			return l.byteEvent(byte(c))
		}
		return fault(ExpectedDigit)
	case lsNumFracCont:
		switch {
		case isDigit(c):
			return l.byteEvent(byte(c))
		case c == 'e' || c == 'E':
			l.setTop(lsNumExpStart)
			return l.byteEvent(byte(c))
		default:
			return l.endNumber(c)
		}
	case lsNumExpStart:
		switch {
		case c == '+' || c == '-':
			l.setTop(lsNumExpIntStart)
			return l.byteEvent(byte(c))
		case isDigit(c):
			l.setTop(lsNumExpIntCont)
			return l.byteEvent(byte(c))
		default:
			return fault(ExpectedExponentDigit)
		}
	case lsNumExpIntStart:
		if isDigit(c) {
			l.setTop(lsNumExpIntCont)
			return l.byteEvent(byte(c))
		}
		return fault(ExpectedExponentDigit)
	default: // lsNumExpIntCont
		if isDigit(c) {
			return l.byteEvent(byte(c))
		}
		return l.endNumber(c)
	}
}

// endNumber closes the number frame. At EOF there is no following byte to
// re-dispatch, so the spec calls for a plain Success pop rather than Retry;
// otherwise the boundary byte (whitespace, ',', ']', '}', or garbage) is
// replayed by ReadByte against the now-current parent frame.
func (l *Lexer) endNumber(c int) Result {
	if c < 0 {
		return l.pop(Number, Success, -1)
	}
	return l.pop(Number, Retry, -1)
}

func (l *Lexer) stepLiteral(state LexerState, c int) Result {
	if c < 0 {
		return fault(NoData)
	}
	text := literalText(state)
	if byte(c) != text[l.length] {
		return fault(ExpectedLiteral)
	}
	l.length++
	if l.length == len(text) {
		return l.pop(Literal, Success, c)
	}
	return l.byteEvent(byte(c))
}

func literalText(state LexerState) string {
	switch state {
	case lsFalse:
		return "false"
	case lsNull:
		return "null"
	default:
		return "true"
	}
}
