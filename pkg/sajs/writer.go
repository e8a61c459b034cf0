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

// minWriterMemory is the smallest memory NewWriter accepts, mirroring the
// Lexer's memory-sizing contract even though the Go Writer, like the Go
// Lexer, keeps its header off the caller's slice; see SPEC_FULL.md §4.1.
const minWriterMemory = 8

const hexDigits = "0123456789ABCDEF"

// Writer transforms a stream of Lexer Results back into JSON text
// fragments. It never fails on its own; BadWrite is reserved for the
// output sink a caller layers on top.
type Writer struct {
	depth   int
	leaf    ValueKind // String, Number, or Literal while a leaf is open
	outBuf  [8]byte
	outLen  int
}

// NewWriter constructs a Writer. It returns (nil, false) if memory is
// smaller than minWriterMemory.
func NewWriter(memory []byte) (*Writer, bool) {
	if len(memory) < minWriterMemory {
		return nil, false
	}
	return &Writer{}, true
}

func prefixForStart(flags Flags) Prefix {
	switch {
	case flags.Has(IsMemberValue):
		return PrefixMemberColon
	case flags.Has(IsMemberName):
		if flags.Has(IsFirst) {
			return PrefixObjectStart
		}
		return PrefixMemberComma
	case flags.Has(IsElement):
		if flags.Has(IsFirst) {
			return PrefixArrayStart
		}
		return PrefixArrayComma
	default:
		return PrefixNone
	}
}

func (w *Writer) out(b ...byte) []byte {
	w.outLen = copy(w.outBuf[:], b)
	return w.outBuf[:w.outLen]
}

// Write turns one Lexer Result, plus the byte view that accompanied it,
// into a TextOutput fragment. view is ignored for events that carry no
// bytes of their own (container Start/End, Nothing).
func (w *Writer) Write(result Result, view []byte) TextOutput {
	switch result.Event {
	case EventNothing:
		return TextOutput{Status: Success, Indent: w.depth, Prefix: PrefixNone}
	case EventStart:
		return w.writeStart(result, view)
	case EventEnd:
		return w.writeEnd(result, view)
	case EventDoubleEnd:
		return w.writeDoubleEnd(result, view)
	case EventBytes:
		return w.writeBytes(view)
	default:
		return TextOutput{Status: Success, Indent: w.depth, Prefix: PrefixNone}
	}
}

func (w *Writer) writeStart(result Result, view []byte) TextOutput {
	prefix := prefixForStart(result.Flags)
	var b []byte
	switch result.Kind {
	case Object:
		w.depth++
		b = w.out('{')
	case Array:
		w.depth++
		b = w.out('[')
	case String:
		w.leaf = String
		b = w.out('"')
	case Number, Literal:
		w.leaf = result.Kind
		b = w.out(view...)
	}
	return TextOutput{Status: Success, Indent: w.depth, Bytes: b, Prefix: prefix}
}

func (w *Writer) writeEnd(result Result, view []byte) TextOutput {
	var b []byte
	var prefix Prefix
	switch result.Kind {
	case Object:
		w.depth--
		b = w.out('}')
		prefix = PrefixObjectEnd
	case Array:
		w.depth--
		b = w.out(']')
		prefix = PrefixArrayEnd
	case String:
		w.leaf = noKind
		b = w.out('"')
	case Literal:
		w.leaf = noKind
		if result.Flags.Has(HasBytes) {
			b = w.out(view...)
		}
	case Number:
		w.leaf = noKind
		// Numbers carry no trailing byte of their own; the boundary
		// byte that ended them is handled separately by the caller.
	}
	return TextOutput{Status: Success, Indent: w.depth, Bytes: b, Prefix: prefix}
}

// writeDoubleEnd handles one byte that closed both a number (the only leaf
// kind our Lexer ever double-ends, see DESIGN.md) and its surrounding
// container in a single call.
func (w *Writer) writeDoubleEnd(result Result, view []byte) TextOutput {
	w.leaf = noKind
	var b []byte
	var prefix Prefix
	switch result.Kind {
	case Object:
		w.depth--
		b = w.out('}')
		prefix = PrefixObjectEnd
	case Array:
		w.depth--
		b = w.out(']')
		prefix = PrefixArrayEnd
	}
	return TextOutput{Status: Success, Indent: w.depth, Bytes: b, Prefix: prefix}
}

func (w *Writer) writeBytes(view []byte) TextOutput {
	var b []byte
	if w.leaf == String {
		b = w.escapeInto(view)
	} else {
		b = w.out(view...)
	}
	return TextOutput{Status: Success, Indent: w.depth, Bytes: b, Prefix: PrefixNone}
}

// escapeInto applies the writer's escape table to view, which holds either
// a single raw content byte or a multi-byte UTF-8 sequence decoded from a
// \u escape by the Lexer (never itself a control byte, so never escaped
// further).
func (w *Writer) escapeInto(view []byte) []byte {
	if len(view) != 1 {
		return w.out(view...)
	}
	switch b := view[0]; b {
	case '"':
		return w.out('\\', '"')
	case '\\':
		return w.out('\\', '\\')
	case 0x08:
		return w.out('\\', 'b')
	case 0x0C:
		return w.out('\\', 'f')
	case 0x0A:
		return w.out('\\', 'n')
	case 0x0D:
		return w.out('\\', 'r')
	case 0x09:
		return w.out('\\', 't')
	default:
		if b < 0x20 {
			return w.out('\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0x0F])
		}
		return w.out(b)
	}
}
