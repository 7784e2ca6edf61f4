package greql

import (
	"testing"
)

const benchQuery = `from x : V{Person}, y : V{Person}
with x -->{Knows}+ y and x.age > y.age and not (x <-- y)
report x.name as "older", y.name as "younger"
end`

func BenchmarkParse(b *testing.B) {
	for b.Loop() {
		q, err := Parse(benchQuery)
		if err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
		_ = q
	}
}

func BenchmarkParseWithoutMemoization(b *testing.B) {
	for b.Loop() {
		q, err := Parse(benchQuery, WithoutMemoization())
		if err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
		_ = q
	}
}

func BenchmarkParseLongPath(b *testing.B) {
	query := "using a: a"
	for range 40 {
		query += " --> a"
	}
	b.ResetTimer()
	for b.Loop() {
		if _, err := Parse(query); err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
	}
}
