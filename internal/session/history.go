package session

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/doeshing/vibegen/internal/domain"
)

// SearchHistory ranks history items by fuzzy match over topic, vibestack and
// generated prompt. An empty query returns items unchanged.
func SearchHistory(items []domain.HistoryItem, query string, limit int) []domain.HistoryItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return capItems(items, limit)
	}
	searchStrings := make([]string, 0, len(items))
	for _, item := range items {
		searchStrings = append(searchStrings, fmt.Sprintf("%s %s %s", item.Topic, item.Vibestack, item.GeneratedPrompt))
	}
	matches := fuzzy.Find(query, searchStrings)
	out := make([]domain.HistoryItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return capItems(out, limit)
}

func capItems(items []domain.HistoryItem, limit int) []domain.HistoryItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
