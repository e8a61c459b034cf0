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

// Package sajs is a streaming, event-driven JSON reader and a companion
// text writer, modeled as a push-style SAX pipeline. The Lexer consumes one
// input byte at a time and returns a Result describing what, if anything,
// became observable as a consequence of that byte: the start or end of a
// value, a few bytes of string/number/literal content, or nothing at all.
//
// The package performs no input buffering beyond a small, caller-sized
// container-nesting stack, allocates nothing on the Lexer/Writer hot path,
// and never builds a tree or DOM of the parsed document. Numbers are
// surfaced as their literal byte sequences; callers that need a numeric
// value convert them.
//
// A minimal driver looks like:
//
//	lx, ok := sajs.NewLexer(make([]byte, 64))
//	if !ok {
//		// memory too small
//	}
//	wr, ok := sajs.NewWriter(make([]byte, 16))
//	for _, c := range []byte(`{"a":1}`) {
//		result := lx.ReadByte(int(c))
//		if result.Event == sajs.EventNothing {
//			continue
//		}
//		out := wr.Write(result, lx.Bytes())
//		os.Stdout.Write(out.Bytes)
//	}
//	lx.ReadByte(-1) // signal end of input
package sajs
