package library

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Related-document ranking: every scanned document gets a term-frequency
// vector built from its content, and candidates are ranked by cosine
// similarity against the query document. Scores below the floor are
// treated as unrelated rather than ranked last.

// relatedMinSimilarity is the floor below which a candidate is dropped
const relatedMinSimilarity = 0.1

// termVector maps a term to its occurrence count in a document
type termVector map[string]float64

// stopWords are skipped during vectorization; they dominate raw counts
// without carrying content.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "he": {}, "her": {}, "his": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "not": {}, "of": {}, "on": {},
	"or": {}, "she": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "these": {}, "they": {}, "this": {}, "to": {},
	"was": {}, "were": {}, "will": {}, "with": {}, "you": {},
}

// vectorize builds a term-frequency vector from document text. Terms are
// lowercased words of three or more characters, stop words excluded.
func vectorize(text string) termVector {
	v := termVector{}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		if len(w) < 3 {
			continue
		}
		if _, skip := stopWords[w]; skip {
			continue
		}
		v[w]++
	}
	return v
}

// cosineSimilarity returns the cosine of the angle between two term
// vectors, clamped to [0, 1]. Empty or degenerate vectors score 0.
func cosineSimilarity(a, b termVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for term, x := range a {
		normA += x * x
		if y, ok := b[term]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// scoredDoc pairs a candidate path with its similarity score
type scoredDoc struct {
	path  string
	score float64
}

// rankBySimilarity scores every candidate against the query vector and
// returns the paths of the top matches, best first. Ties break on path
// so the ordering is stable.
func rankBySimilarity(query termVector, candidates map[string]termVector, limit int) []string {
	if len(query) == 0 || limit <= 0 {
		return nil
	}

	scored := make([]scoredDoc, 0, len(candidates))
	for path, v := range candidates {
		score := cosineSimilarity(query, v)
		if score < relatedMinSimilarity {
			continue
		}
		scored = append(scored, scoredDoc{path: path, score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].path < scored[j].path
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.path
	}
	return out
}
