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

// ValueKind identifies the JSON value kind a Start/End/DoubleEnd event
// belongs to. Zero is reserved so a freshly zeroed Result reads as "no
// kind", never as a valid one.
type ValueKind int

const (
	noKind ValueKind = iota
	// Object is a JSON object value, "{...}".
	Object
	// Array is a JSON array value, "[...]".
	Array
	// String is a JSON string value.
	String
	// Number is a JSON number value, surfaced as its literal bytes.
	Number
	// Literal is one of the JSON literals false, null, true.
	Literal
)

func (k ValueKind) String() string {
	switch k {
	case Object:
		return "Object"
	case Array:
		return "Array"
	case String:
		return "String"
	case Number:
		return "Number"
	case Literal:
		return "Literal"
	default:
		return "None"
	}
}

// Flags is a bitset describing a Start event's role inside its parent, plus
// whether the event carries bytes in the Lexer's byte buffer.
type Flags uint8

const (
	// IsMemberName marks a Start beginning an object member's name.
	IsMemberName Flags = 1 << iota
	// IsMemberValue marks a Start beginning an object member's value.
	IsMemberValue
	// IsElement marks a Start beginning an array element.
	IsElement
	// IsFirst marks the first member/element of its container.
	IsFirst
	// HasBytes marks a Result whose accompanying byte buffer (see
	// Lexer.Bytes) holds one or more bytes.
	HasBytes
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Event is the kind of structural observation a single ReadByte call
// produced.
type Event int

const (
	// EventNothing means the byte was consumed but produced no
	// observable event: whitespace, or a mid-token continuation.
	EventNothing Event = iota
	// EventStart brackets the beginning of a value.
	EventStart
	// EventEnd brackets the end of a value.
	EventEnd
	// EventDoubleEnd means one input byte terminated both a number or
	// literal and its immediately surrounding container.
	EventDoubleEnd
	// EventBytes carries 1-4 UTF-8 bytes of a string/number/literal
	// body; see Lexer.Bytes.
	EventBytes
)

func (e Event) String() string {
	switch e {
	case EventNothing:
		return "Nothing"
	case EventStart:
		return "Start"
	case EventEnd:
		return "End"
	case EventDoubleEnd:
		return "DoubleEnd"
	case EventBytes:
		return "Bytes"
	default:
		return "Unknown"
	}
}

// Result is the compact record returned by exactly one ReadByte call.
type Result struct {
	Status Status
	Event  Event
	Kind   ValueKind
	Flags  Flags
}

// Prefix names the whitespace/punctuation hint a TextOutput carries. The
// caller materializes the actual bytes: newline+indent in pretty mode, or
// nothing in terse mode, for the container and comma prefixes; ": "/":" for
// MemberColon.
type Prefix int

const (
	// PrefixNone requests no separator before the fragment.
	PrefixNone Prefix = iota
	// PrefixObjectStart requests the separator before an object's first
	// member.
	PrefixObjectStart
	// PrefixArrayStart requests the separator before an array's first
	// element.
	PrefixArrayStart
	// PrefixObjectEnd requests the separator before a '}'.
	PrefixObjectEnd
	// PrefixArrayEnd requests the separator before a ']'.
	PrefixArrayEnd
	// PrefixMemberColon requests the separator between a member's name
	// and its value.
	PrefixMemberColon
	// PrefixMemberComma requests the separator before an object's
	// non-first member.
	PrefixMemberComma
	// PrefixArrayComma requests the separator before an array's
	// non-first element.
	PrefixArrayComma
)

// TextOutput is what a single Writer.Write call produces: a prefix hint,
// the container depth at emission time, and 0-8 bytes of literal JSON text.
// Bytes is owned by the Writer and is only valid until the next call.
type TextOutput struct {
	Status Status
	Indent int
	Bytes  []byte
	Prefix Prefix
}
