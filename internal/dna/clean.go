package dna

// Clean splits a raw record byte-string on maximal runs of the ambiguous
// base 'N' (either case), strips line-break bytes within each piece, and
// packs what remains 2 bits per base. Pieces shorter than k bases are
// discarded: no k-mer can span an ambiguous run, so they contribute
// nothing. emit is called once per retained segment; the segment is only
// valid for the duration of the call and is reused afterwards.
func Clean(raw []byte, k int, seg *PackedSeq, emit func(seg *PackedSeq)) {
	i := 0
	n := len(raw)
	for i < n {
		// Skip a run of ambiguous bases.
		for i < n && isAmbiguous(raw[i]) {
			i++
		}
		j := i
		for j < n && !isAmbiguous(raw[j]) {
			j++
		}
		if j-i >= k {
			packPiece(raw[i:j], seg)
			if seg.Len() >= k {
				emit(seg)
			}
		}
		i = j
	}
}

// packPiece packs one N-free piece into seg, dropping line-break bytes.
func packPiece(piece []byte, seg *PackedSeq) {
	seg.Reset()
	seg.Grow(len(piece))
	start := 0
	for i := 0; i <= len(piece); i++ {
		if i == len(piece) || piece[i] == '\n' || piece[i] == '\r' {
			if i > start {
				seg.PushASCII(piece[start:i])
			}
			start = i + 1
		}
	}
}

func isAmbiguous(b byte) bool { return b == 'N' || b == 'n' }
