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

// Package indent inserts a prefix at the start of every line of a byte
// stream. The CLI uses it only to write its usage text; pretty-mode JSON
// output materializes sajs Prefix hints without it.
package indent

import "io"

// String returns s with prefix inserted at the start of every line. A
// final newline does not start a new prefixed line.
func String(prefix, s string) string {
	return string(Bytes([]byte(prefix), []byte(s)))
}

// Bytes returns b with prefix inserted at the start of every line.
func Bytes(prefix, b []byte) []byte {
	out, _, _ := indent(prefix, b, true)
	return out
}

// indent walks data once, inserting prefix at the start of every line
// (atBOL true means data begins at the start of a line). orig[i] records
// how many bytes of data had been fully consumed once out[i] was
// appended, so a caller can map a partial underlying write back onto how
// much of data it actually accounts for.
func indent(prefix, data []byte, atBOL bool) (out []byte, orig []int, atEnd bool) {
	consumed := 0
	for _, b := range data {
		if atBOL && len(prefix) > 0 {
			for _, pb := range prefix {
				out = append(out, pb)
				orig = append(orig, consumed)
			}
		}
		out = append(out, b)
		consumed++
		orig = append(orig, consumed)
		atBOL = b == '\n'
	}
	return out, orig, atBOL
}

// Writer wraps an io.Writer, inserting prefix at the start of every line
// written through it.
type Writer struct {
	w      io.Writer
	prefix []byte
	atBOL  bool
}

// NewWriter returns a Writer that indents every line written through it
// with prefix before forwarding to w.
func NewWriter(w io.Writer, prefix string) io.Writer {
	return &Writer{w: w, prefix: []byte(prefix), atBOL: true}
}

// Write reports, in n, how many bytes of p it accounts for: the full
// len(p) on success, or however much of p the underlying short/erroring
// write actually covers (prefix bytes that write inserted are not part
// of p and are never themselves reported).
func (w *Writer) Write(p []byte) (n int, err error) {
	out, orig, atEnd := indent(w.prefix, p, w.atBOL)
	if len(out) == 0 {
		return 0, nil
	}
	wn, err := w.w.Write(out)
	if err != nil {
		if wn <= 0 {
			return 0, err
		}
		if wn > len(out) {
			wn = len(out)
		}
		return orig[wn-1], err
	}
	w.atBOL = atEnd
	return len(p), nil
}
