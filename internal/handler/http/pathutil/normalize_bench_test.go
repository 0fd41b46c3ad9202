package pathutil

import "testing"

// NormalizePath sits on the hot path of every request, so it has to
// stay well under a microsecond.
func BenchmarkNormalizePath(b *testing.B) {
	cases := []struct {
		name string
		path string
	}{
		{"person_id", "/person/123"},
		{"static", "/persons"},
		{"query_string", "/persons?page=2&limit=10"},
		{"trailing_slash", "/person/123/"},
		{"no_match", "/unknown/very/long/path/that/matches/nothing/123"},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = NormalizePath(bc.path)
			}
		})
	}

	b.Run("mixed_parallel", func(b *testing.B) {
		paths := []string{"/person/123", "/person", "/persons", "/health"}
		b.RunParallel(func(pb *testing.PB) {
			i := 0
			for pb.Next() {
				_ = NormalizePath(paths[i%len(paths)])
				i++
			}
		})
	})
}
