package arbitrage

import (
	"sort"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
)

// Group collects records by entity. Each group is ordered by edge and the
// groups by their best edge, both stable.
func Group(records []models.ArbitrageRecord, mode models.Mode) []models.EntityGroup {
	index := make(map[string]int)
	groups := make([]models.EntityGroup, 0)

	for _, r := range records {
		i, ok := index[r.Identity]
		if !ok {
			i = len(groups)
			index[r.Identity] = i
			groups = append(groups, models.EntityGroup{Identity: r.Identity, Label: r.Label})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	for i := range groups {
		g := &groups[i]
		Rank(g.Records, mode)
		g.BestEdge = g.Records[0].RankingEdge(mode)

		positive := make(map[string]struct{})
		for _, r := range g.Records {
			if r.RankingEdge(mode) > 0 {
				positive[r.SourceID] = struct{}{}
			}
		}
		g.Positives = len(positive)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].BestEdge > groups[j].BestEdge
	})
	return groups
}

// Summarize counts entities with a positive edge at one source and at more
// than one source.
func Summarize(groups []models.EntityGroup) models.EdgeStats {
	stats := models.EdgeStats{Entities: len(groups)}
	for _, g := range groups {
		stats.Records += len(g.Records)
		if g.Positives > 0 {
			stats.PositiveEntities++
		}
		if g.Positives > 1 {
			stats.MultiSourcePositive++
		}
	}
	return stats
}
