package backend

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
)

func expectToRead(t *testing.T, reader io.Reader, expected []byte) {
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if err != nil {
		t.Errorf("expected read to succeed, got: %v", err)
	} else if !bytes.Equal(scratch[:n], expected) {
		t.Errorf("expected read to yield %q, got: %q", expected, scratch[:n])
	}
}

func expectReadEOF(t *testing.T, reader io.Reader) {
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected read to give EOF, got: %v", err)
	} else if n != 0 {
		t.Errorf("expected read to read nothing, read %q", scratch[:n])
	}
}

func TestLineReader(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	first := "hello\n"
	second := "there\n"
	buf.WriteString("hello\n")
	buf.WriteString("there\n")
	l := NewLineReader(buf)
	expectToRead(t, l, []byte(first))
	expectToRead(t, l, []byte(second))
	third := "unterminated"
	buf.WriteString(third)
	expectReadEOF(t, l)
	fourth := "line\n"
	buf.WriteString(fourth)
	fullLine := third + fourth
	expectToRead(t, l, []byte(fullLine))
	buf.WriteString("foo")
	expectReadEOF(t, l)
	buf.WriteString("bar")
	expectReadEOF(t, l)
	buf.WriteString("bin\nbaz")
	expectToRead(t, l, []byte("foobarbin\n"))
}

func TestLineReaderPending(t *testing.T) {
	buf := bytes.NewBufferString("a,b\n1,2")
	l := NewLineReader(buf)
	expectToRead(t, l, []byte("a,b\n"))
	expectReadEOF(t, l)
	if pending := string(l.Pending()); pending != "1,2" {
		t.Errorf("expected pending %q, got %q", "1,2", pending)
	}
	buf.WriteString("\n")
	expectToRead(t, l, []byte("1,2\n"))
	if pending := l.Pending(); len(pending) != 0 {
		t.Errorf("expected nothing pending, got %q", pending)
	}
}

func TestLineReaderLongLine(t *testing.T) {
	long := strings.Repeat("x", 10000) + "\n"
	buf := bytes.NewBufferString(long + "tail")
	l := NewLineReader(buf)
	var got []byte
	var scratch [7]byte
	for {
		n, err := l.Read(scratch[:])
		got = append(got, scratch[:n]...)
		if err != nil {
			break
		}
	}
	if string(got) != long {
		t.Errorf("expected %d bytes of the long line, got %d", len(long), len(got))
	}
	if pending := string(l.Pending()); pending != "tail" {
		t.Errorf("expected pending %q, got %q", "tail", pending)
	}
}

func TestLineReaderLongCSVField(t *testing.T) {
	field := strings.Repeat("y", 8192)
	r := csv.NewReader(NewLineReader(strings.NewReader("a,b\n" + field + ",2\n")))
	if _, err := r.Read(); err != nil {
		t.Fatalf("failed reading header: %v", err)
	}
	rec, err := r.Read()
	if err != nil {
		t.Fatalf("failed reading row: %v", err)
	}
	if len(rec) != 2 || rec[0] != field || rec[1] != "2" {
		t.Errorf("expected the long field intact, got %d fields with first of length %d", len(rec), len(rec[0]))
	}
}
