package shopping

import (
	"sort"
	"strings"
	"time"
)

// HistoryEntry fréquence d'usage d'un ingrédient saisi manuellement,
// servant uniquement à classer les suggestions de saisie.
type HistoryEntry struct {
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	LastUsed   time.Time `json:"last_used"`
	UsageCount int       `json:"usage_count"`
}

// RankSuggestions filtre les entrées par préfixe (insensible à la casse et
// aux diacritiques) puis classe par fréquence décroissante, l'usage le plus
// récent départageant les égalités.
func RankSuggestions(entries []HistoryEntry, prefix string, limit int) []HistoryEntry {
	folded := diacriticReplacer.Replace(strings.ToLower(strings.TrimSpace(prefix)))

	matched := make([]HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		name := diacriticReplacer.Replace(strings.ToLower(entry.Name))
		if folded == "" || strings.HasPrefix(name, folded) {
			matched = append(matched, entry)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].UsageCount != matched[j].UsageCount {
			return matched[i].UsageCount > matched[j].UsageCount
		}
		return matched[i].LastUsed.After(matched[j].LastUsed)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
