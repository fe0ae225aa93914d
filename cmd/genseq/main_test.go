package main

import (
	"bytes"
	"testing"
)

func TestBaseStreamDeterministic(t *testing.T) {
	a := newBaseStream(42)
	b := newBaseStream(42)
	for i := 0; i < 500; i++ {
		if x, y := a.next(), b.next(); x != y {
			t.Fatalf("streams diverge at base %d: %c vs %c", i, x, y)
		}
	}

	c := newBaseStream(43)
	same := 0
	a = newBaseStream(42)
	for i := 0; i < 500; i++ {
		if a.next() == c.next() {
			same++
		}
	}
	if same == 500 {
		t.Fatal("different seeds produced identical streams")
	}
}

func TestMakeRecordLengthAndAlphabet(t *testing.T) {
	seq := makeRecord(newBaseStream(1), 300, 0, 5)
	if len(seq) != 300 {
		t.Fatalf("len = %d, want 300", len(seq))
	}
	for i, b := range seq {
		switch b {
		case 'A', 'C', 'G', 'T':
		default:
			t.Fatalf("unexpected byte %q at %d", b, i)
		}
	}
}

func TestMakeRecordAmbiguousRuns(t *testing.T) {
	seq := makeRecord(newBaseStream(1), 100, 20, 5)
	if len(seq) != 100 {
		t.Fatalf("len = %d, want 100", len(seq))
	}
	if got := bytes.Count(seq, []byte{'N'}); got == 0 {
		t.Fatal("no ambiguous bases inserted")
	}
	if !bytes.Equal(seq[20:25], []byte("NNNNN")) {
		t.Fatalf("expected N run at 20, got %q", seq[20:25])
	}
}

func TestMakeRecordDegenerateRunLength(t *testing.T) {
	// A non-positive run length must disable insertion rather than stall
	// the generator at the first insertion point.
	for _, nLen := range []int{0, -1} {
		seq := makeRecord(newBaseStream(1), 50, 10, nLen)
		if len(seq) != 50 {
			t.Fatalf("nLen=%d: len = %d, want 50", nLen, len(seq))
		}
		if bytes.ContainsRune(seq, 'N') {
			t.Fatalf("nLen=%d: ambiguous bases inserted", nLen)
		}
	}
}
