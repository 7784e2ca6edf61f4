package types

// ByteOffset indexes the query text.
type ByteOffset uint32

// Span is the half-open byte range [Start, End) of a token or construct.
type Span struct {
	Start ByteOffset
	End   ByteOffset
}

func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// SpanAt builds the span of length bytes starting at offset, the form
// graph positions use.
func SpanAt(offset, length int) Span {
	return NewSpan(ByteOffset(offset), ByteOffset(offset+length))
}

func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

// Cover returns the smallest span holding both s and o. Token ranges are
// turned into edge positions this way.
func (s Span) Cover(o Span) Span {
	return NewSpan(min(s.Start, o.Start), max(s.End, o.End))
}
