package recipe

import "strings"

// similarityThreshold ratio au-delà duquel deux noms de recettes sont
// considérés comme des doublons
const similarityThreshold = 0.8

// levenshtein distance d'édition entre deux chaînes, calculée sur les runes
// avec deux lignes de travail.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // suppression
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// SimilarityRatio taux de ressemblance entre deux noms, insensible à la
// casse, entre 0 et 1.
func SimilarityRatio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}

	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// IsSimilarName vrai quand deux noms sont identiques ou trop proches pour
// coexister
func IsSimilarName(a, b string) bool {
	return SimilarityRatio(a, b) >= similarityThreshold
}
