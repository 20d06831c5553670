// Package guildlist implements the guild pickers ordering and search
// ranking over the admin-guild snapshot stored in the session.
package guildlist

import (
	"sort"
	"strings"
	"unicode"

	"github.com/musik-cafe/dashboard/types"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var collator = collate.New(language.Und, collate.IgnoreCase)

func leadingDigit(name string) bool {
	for _, r := range name {
		return unicode.IsDigit(r)
	}

	return false
}

// Sort orders guilds with digit-leading names first, then alphabetically
// within each group using locale-aware comparison. The sort is stable
func Sort(guilds []types.Guild) []types.Guild {
	sorted := make([]types.Guild, len(guilds))
	copy(sorted, guilds)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := leadingDigit(sorted[i].Name), leadingDigit(sorted[j].Name)

		if di != dj {
			return di
		}

		return collator.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})

	return sorted
}

// Rank re-ranks the guild list against a search query in three priority
// tiers: exact server-id match, name starts-with, then name-or-id contains.
// Guilds matching no tier are dropped. An empty query restores the plain
// sorted list
func Rank(guilds []types.Guild, query string) []types.Guild {
	sorted := Sort(guilds)

	if query == "" {
		return sorted
	}

	lowerQuery := strings.ToLower(query)

	var exact, prefix, contains []types.Guild

	for _, guild := range sorted {
		lowerName := strings.ToLower(guild.Name)

		switch {
		case guild.ID == query:
			exact = append(exact, guild)
		case strings.HasPrefix(lowerName, lowerQuery):
			prefix = append(prefix, guild)
		case strings.Contains(lowerName, lowerQuery) || strings.Contains(guild.ID, query):
			contains = append(contains, guild)
		}
	}

	ranked := make([]types.Guild, 0, len(exact)+len(prefix)+len(contains))
	ranked = append(ranked, exact...)
	ranked = append(ranked, prefix...)
	ranked = append(ranked, contains...)

	return ranked
}
