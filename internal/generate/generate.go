// Package generate produces the candidate password sequence: dictionary
// variations first, then exhaustive brute force over a character set. The
// sequence is lazy and deterministic, and its total size has a closed form so
// a progress bar can be scaled without enumerating anything.
package generate

import (
	"zipcrack/internal/wordlist"
)

// Phase identifies which part of the search a candidate came from.
type Phase int

const (
	PhaseDictionary Phase = iota
	PhaseBruteForce
)

func (p Phase) String() string {
	switch p {
	case PhaseDictionary:
		return "dictionary"
	case PhaseBruteForce:
		return "brute-force"
	default:
		return "unknown"
	}
}

// Charset is an ordered set of symbols for brute-force enumeration. The same
// ordering drives both enumeration and the total estimate.
type Charset []rune

const (
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits  = "0123456789"
	Special = "!@#$%^&*"
)

// DefaultCharset is the 70-symbol set used when nothing else is configured.
var DefaultCharset = Charset(Lower + Upper + Digits + Special)

// Candidate is one password to try, tagged with the phase that produced it.
type Candidate struct {
	Password string
	Phase    Phase
}

// Source describes a candidate sequence. Words is iterated in slice order;
// each word expands to its 7 variations before the next word starts. After the
// last word, every string of length 1..MaxLength over Charset is yielded in
// odometer order (leftmost position most significant). MaxLength <= 0 skips
// the brute-force phase entirely.
type Source struct {
	Words     []string
	Charset   Charset
	MaxLength int
}

// All returns the full candidate sequence as a range-over-func iterator.
// Each call restarts from the beginning.
func (s Source) All() func(yield func(Candidate) bool) {
	return func(yield func(Candidate) bool) {
		for _, w := range s.Words {
			for _, v := range wordlist.Variations(w) {
				if !yield(Candidate{Password: v, Phase: PhaseDictionary}) {
					return
				}
			}
		}
		for length := 1; length <= s.MaxLength; length++ {
			if !s.combinations(length, yield) {
				return
			}
		}
	}
}

// combinations yields every length-long string over s.Charset, advancing an
// index odometer. Returns false if the consumer stopped early.
func (s Source) combinations(length int, yield func(Candidate) bool) bool {
	if len(s.Charset) == 0 {
		return true
	}
	indices := make([]int, length)
	buf := make([]rune, length)
	for {
		for i, v := range indices {
			buf[i] = s.Charset[v]
		}
		if !yield(Candidate{Password: string(buf), Phase: PhaseBruteForce}) {
			return false
		}
		i := length - 1
		for ; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(s.Charset) {
				break
			}
			indices[i] = 0
		}
		if i < 0 {
			return true
		}
	}
}

// EstimateTotal computes the size of the sequence All would produce, without
// producing it: 7 per dictionary word plus |charset|^L for each brute-force
// length. The result scales the progress bar and nothing else; exhaustion is
// detected by the sequence actually ending, never by comparing a counter to
// this value.
func (s Source) EstimateTotal() int64 {
	total := int64(wordlist.VariationCount) * int64(len(s.Words))
	n := int64(len(s.Charset))
	p := int64(1)
	for length := 1; length <= s.MaxLength; length++ {
		p *= n
		total += p
	}
	return total
}
