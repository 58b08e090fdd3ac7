package parallel

// Span is a half-open index range [Start, End).
type Span struct {
	Start, End int
}

// Len returns the number of indices in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Split cuts [0, length) into consecutive spans of at most size indices.
// The last span is shorter when length is not a multiple of size.
func Split(length, size int) []Span {
	if length <= 0 {
		return nil
	}
	if size <= 0 {
		panic("parallel: span size must be positive")
	}

	spans := make([]Span, 0, (length+size-1)/size)
	for start := 0; start < length; start += size {
		end := start + size
		if end > length {
			end = length
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}
