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

package diagnostic

import (
	"bytes"
	"strings"
	"testing"
)

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Errorf("bad status %v", 7)
	if got := buf.String(); !strings.Contains(got, "error: bad status 7") {
		t.Errorf("Errorf output = %q, want it to contain %q", got, "error: bad status 7")
	}
	if l.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1", l.ErrorCount())
	}
}

func TestDebugfSuppressedBelowDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Debugf("tracing %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Debugf at LevelError wrote %q, want nothing", buf.String())
	}
}

func TestDebugfAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.Debugf("tracing %d", 1)
	if got := buf.String(); !strings.Contains(got, "debug: tracing 1") {
		t.Errorf("Debugf output = %q, want it to contain %q", got, "debug: tracing 1")
	}
}

func TestErrorCountAccumulates(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	for i := 0; i < 3; i++ {
		l.Errorf("error %d", i)
	}
	if l.ErrorCount() != 3 {
		t.Errorf("ErrorCount() = %d, want 3", l.ErrorCount())
	}
}
