// Package dimacs reads the DIMACS CNF clause format: a lazy, finite,
// non-restartable iterator over clauses, plus an Open helper that
// transparently decompresses gzip and zstd input by file extension.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Reader iterates over the clauses of a DIMACS CNF stream. Blank lines,
// comment lines ("c ..."), and the problem line ("p cnf ...") are
// skipped; everything else is tokenized on whitespace into a sequence of
// signed integer literals, each clause terminated by a literal 0.
//
// A Reader is single-pass: once exhausted, it cannot be rewound. It is
// not safe for concurrent use.
type Reader struct {
	sc  *bufio.Scanner
	err error
}

// New wraps r as a DIMACS clause reader.
func New(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next clause as a slice of signed literals (0 excluded),
// or io.EOF once the stream is exhausted. A malformed token returns a
// parse error; the Reader must not be used again after either.
func (d *Reader) Next() ([]int, error) {
	if d.err != nil {
		return nil, d.err
	}

	var clause []int
	for d.sc.Scan() {
		line := strings.TrimSpace(d.sc.Text())
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "p") {
			continue
		}

		fields := strings.Fields(line)
		done := false
		for _, f := range fields {
			lit, err := strconv.Atoi(f)
			if err != nil {
				d.err = fmt.Errorf("dimacs: malformed literal %q: %w", f, err)
				return nil, d.err
			}
			if lit == 0 {
				done = true
				break
			}
			clause = append(clause, lit)
		}
		if done {
			return clause, nil
		}
	}

	if err := d.sc.Err(); err != nil {
		d.err = fmt.Errorf("dimacs: scan: %w", err)
		return nil, d.err
	}

	d.err = io.EOF
	if len(clause) > 0 {
		// a trailing clause with no terminating 0 is still accepted,
		// matching the original reader's take_while semantics.
		return clause, nil
	}
	return nil, io.EOF
}

// All drains d into a slice of clauses. It is a convenience for callers
// that don't need streaming behavior, such as the CLI and the batch
// runner, which hand the whole clause set to solver.New.
func All(d *Reader) ([][]int, error) {
	var clauses [][]int
	for {
		c, err := d.Next()
		if err == io.EOF {
			return clauses, nil
		}
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
}

// Open opens path and wraps it in the decompressor implied by its
// extension: ".gz" for gzip, ".zst" for zstd, anything else read raw.
// The returned ReadCloser's Close releases both the decompressor and the
// underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dimacs: open %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("dimacs: gzip %s: %w", path, err)
		}
		return &joinCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil

	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("dimacs: zstd %s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		return &joinCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil

	default:
		return f, nil
	}
}

type joinCloser struct {
	io.Reader
	closers []io.Closer
}

func (j *joinCloser) Close() error {
	var firstErr error
	for _, c := range j.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
