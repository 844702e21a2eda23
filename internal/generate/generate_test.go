package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(s Source) []Candidate {
	var out []Candidate
	s.All()(func(c Candidate) bool {
		out = append(out, c)
		return true
	})
	return out
}

func TestDictionaryOnlySequence(t *testing.T) {
	s := Source{Words: []string{"admin"}, Charset: DefaultCharset, MaxLength: 0}

	got := collect(s)

	want := []string{"admin", "Admin", "ADMIN", "admin123", "admin!", "admin123!", "admin2024"}
	require.Len(t, got, len(want))
	for i, c := range got {
		assert.Equal(t, want[i], c.Password)
		assert.Equal(t, PhaseDictionary, c.Phase)
	}
	assert.Equal(t, int64(7), s.EstimateTotal())
}

func TestBruteForceFullCoverage(t *testing.T) {
	s := Source{Charset: Charset("abc"), MaxLength: 3}

	perLength := map[int]int{}
	seen := map[string]int{}
	s.All()(func(c Candidate) bool {
		require.Equal(t, PhaseBruteForce, c.Phase)
		perLength[len(c.Password)]++
		seen[c.Password]++
		return true
	})

	assert.Equal(t, 3, perLength[1])
	assert.Equal(t, 9, perLength[2])
	assert.Equal(t, 27, perLength[3])
	for pwd, n := range seen {
		assert.Equal(t, 1, n, "duplicate candidate %q", pwd)
		for _, r := range pwd {
			assert.True(t, strings.ContainsRune("abc", r))
		}
	}
}

func TestBruteForceOdometerOrder(t *testing.T) {
	s := Source{Charset: Charset("ab"), MaxLength: 2}

	var got []string
	s.All()(func(c Candidate) bool {
		got = append(got, c.Password)
		return true
	})

	assert.Equal(t, []string{"a", "b", "aa", "ab", "ba", "bb"}, got)
}

func TestPhasesDoNotInterleave(t *testing.T) {
	s := Source{Words: []string{"zz", "aa"}, Charset: Charset("xy"), MaxLength: 1}

	var phases []Phase
	s.All()(func(c Candidate) bool {
		phases = append(phases, c.Phase)
		return true
	})

	require.Len(t, phases, 2*7+2)
	for i, p := range phases[:14] {
		assert.Equal(t, PhaseDictionary, p, "index %d", i)
	}
	for i, p := range phases[14:] {
		assert.Equal(t, PhaseBruteForce, p, "index %d", i)
	}
}

func TestWordsIteratedInSliceOrder(t *testing.T) {
	s := Source{Words: []string{"bbb", "aaa"}}

	got := collect(s)

	require.Len(t, got, 14)
	assert.Equal(t, "bbb", got[0].Password)
	assert.Equal(t, "aaa", got[7].Password)
}

func TestEstimateMatchesEnumeration(t *testing.T) {
	cases := []Source{
		{Words: []string{"admin", "root"}, Charset: Charset("ab1"), MaxLength: 3},
		{Words: nil, Charset: Charset("0123"), MaxLength: 2},
		{Words: []string{"x"}, Charset: DefaultCharset, MaxLength: 0},
		{Words: nil, Charset: DefaultCharset, MaxLength: 0},
	}
	for _, s := range cases {
		assert.Equal(t, int64(len(collect(s))), s.EstimateTotal())
	}
}

func TestNonPositiveMaxLengthSkipsBruteForce(t *testing.T) {
	for _, maxLen := range []int{0, -1} {
		s := Source{Charset: DefaultCharset, MaxLength: maxLen}
		assert.Empty(t, collect(s))
		assert.Zero(t, s.EstimateTotal())
	}
}

func TestAllRestartsFromScratch(t *testing.T) {
	s := Source{Words: []string{"admin"}, Charset: Charset("ab"), MaxLength: 1}

	first := collect(s)
	second := collect(s)

	assert.Equal(t, first, second)
}

func TestEarlyStop(t *testing.T) {
	s := Source{Charset: DefaultCharset, MaxLength: 8}

	n := 0
	s.All()(func(Candidate) bool {
		n++
		return n != 100
	})
	assert.Equal(t, 100, n)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "dictionary", PhaseDictionary.String())
	assert.Equal(t, "brute-force", PhaseBruteForce.String())
}
