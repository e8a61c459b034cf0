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

// Program sajs is a reference consumer of the sajs package: it reads one
// JSON text (file or stdin), re-lexes and re-writes it, and prints the
// result, either compactly (-t) or pretty-printed.
//
// Usage: sajs [-t] [-o FILE] [-k SIZE] [FILE]
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pborman/getopt"

	"github.com/sajs-go/sajs/internal/config"
	"github.com/sajs-go/sajs/internal/diagnostic"
	"github.com/sajs-go/sajs/internal/indent"
	"github.com/sajs-go/sajs/pkg/sajs"
)

const version = "sajs 0.1.0"

// stop is a var, not a direct os.Exit call, so tests can intercept it.
var stop = os.Exit

func main() {
	var help, showVersion, terse bool
	var output string
	var stackSize int

	getopt.BoolVarLong(&help, "help", 'h', "display help")
	getopt.BoolVarLong(&showVersion, "version", 'V', "display version")
	getopt.BoolVarLong(&terse, "terse", 't', "suppress pretty whitespace")
	getopt.StringVarLong(&output, "output", 'o', "write output to FILE instead of stdout", "FILE")
	stackOpt := getopt.IntVarLong(&stackSize, "stack-size", 'k', "lexer stack size in frames", "SIZE")
	getopt.SetParameters("[FILE]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(2)
		return
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
		return
	}
	if showVersion {
		fmt.Fprintln(os.Stderr, version)
		stop(0)
		return
	}
	if stackOpt.Seen() && stackSize <= 0 {
		fmt.Fprintln(os.Stderr, "error: --stack-size must be positive")
		stop(2)
		return
	}

	args := getopt.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "error: at most one input FILE may be given")
		stop(2)
		return
	}

	cfg := config.Config{Terse: terse, StackSize: stackSize, Output: output}

	in := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			stop(2)
			return
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if cfg.Output != "" && cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			stop(2)
			return
		}
		defer f.Close()
		out = f
	}

	stop(run(cfg, in, out, diagnostic.New(os.Stderr, diagnostic.LevelError)))
}

// run drives the lexer/writer pipeline over in and writes formatted JSON
// to out, returning the process exit code spec.md's consumer contract
// assigns: 0 success, 65 if the input held anything but exactly one
// top-level value, status+100 on a lexer/writer fault, 2 on I/O error.
func run(cfg config.Config, in io.Reader, out io.Writer, log *diagnostic.Logger) int {
	lx, ok := sajs.NewLexer(make([]byte, cfg.Frames()))
	if !ok {
		log.Errorf("invalid stack size %d", cfg.Frames())
		return 2
	}
	wr, ok := sajs.NewWriter(make([]byte, 16))
	if !ok {
		log.Errorf("internal error constructing writer")
		return 2
	}

	bw := bufio.NewWriter(out)
	defer bw.Flush()
	br := bufio.NewReader(in)

	depth := 0
	values := 0
	for {
		c := -1
		b, err := br.ReadByte()
		switch {
		case err == nil:
			c = int(b)
		case err == io.EOF:
			c = -1
		default:
			log.Errorf("reading input: %v", err)
			return 2
		}

		r := lx.ReadByte(c)
		if sajs.IsFault(r.Status) {
			log.Errorf("%s", sajs.Strerror(r.Status))
			return int(r.Status) + 100
		}
		atTop := depth == 0
		switch r.Event {
		case sajs.EventStart:
			if r.Kind == sajs.Object || r.Kind == sajs.Array {
				depth++
			}
		case sajs.EventEnd, sajs.EventDoubleEnd:
			if r.Kind == sajs.Object || r.Kind == sajs.Array {
				depth--
				atTop = depth == 0
			}
		}
		if r.Event != sajs.EventNothing {
			to := wr.Write(r, lx.Bytes())
			if err := writeFragment(bw, cfg, to); err != nil {
				log.Errorf("%s", sajs.Strerror(sajs.BadWrite))
				return int(sajs.BadWrite) + 100
			}
			if atTop && (r.Event == sajs.EventEnd || r.Event == sajs.EventDoubleEnd) {
				values++
				bw.WriteByte('\n')
			}
		}
		if c < 0 {
			break
		}
	}

	if err := bw.Flush(); err != nil {
		log.Errorf("writing output: %v", err)
		return 2
	}
	if values != 1 {
		log.Errorf("input held %d top-level values, want exactly 1", values)
		return 65
	}
	return 0
}

// writeFragment materializes a TextOutput's Prefix into literal bytes —
// newline plus indentation in pretty mode, bare ":"/"," in terse mode —
// and then the fragment's own bytes. Its error return maps to the
// writer's BadWrite status: the one fault that originates in the output
// sink rather than in the sajs pipeline itself.
func writeFragment(w *bufio.Writer, cfg config.Config, to sajs.TextOutput) error {
	if cfg.Terse {
		switch to.Prefix {
		case sajs.PrefixMemberColon:
			w.WriteByte(':')
		case sajs.PrefixMemberComma, sajs.PrefixArrayComma:
			w.WriteByte(',')
		}
	} else {
		switch to.Prefix {
		case sajs.PrefixObjectStart, sajs.PrefixArrayStart, sajs.PrefixObjectEnd, sajs.PrefixArrayEnd:
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(cfg.Indent(), to.Indent))
		case sajs.PrefixMemberColon:
			w.WriteString(": ")
		case sajs.PrefixMemberComma, sajs.PrefixArrayComma:
			w.WriteByte(',')
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(cfg.Indent(), to.Indent))
		}
	}
	w.Write(to.Bytes)
	return w.Err()
}

func init() {
	getopt.CommandLine.SetUsage(func() {
		w := indent.NewWriter(os.Stderr, "")
		fmt.Fprintln(w, "Usage: sajs [-t] [-o FILE] [-k SIZE] [FILE]")
		getopt.CommandLine.PrintOptions(w)
	})
}
