package gap

import "github.com/cosmolaser/content-gap/internal/model"

// Find returns, per competitor, the keywords the competitor ranks for that are
// absent from target. Matching is exact on the keyword text.
//
// A keyword listed more than once for a competitor appears once, at its first
// position, with the metrics of its last occurrence. Records without keyword
// text are skipped.
func Find(target []model.Keyword, competitors map[string][]model.Keyword) map[string][]model.Keyword {
	have := make(map[string]struct{}, len(target))
	for _, text := range model.Texts(target) {
		if text != "" {
			have[text] = struct{}{}
		}
	}

	gaps := make(map[string][]model.Keyword, len(competitors))
	for domain, keywords := range competitors {
		gaps[domain] = missing(have, keywords)
	}
	return gaps
}

func missing(have map[string]struct{}, keywords []model.Keyword) []model.Keyword {
	out := make([]model.Keyword, 0)
	index := make(map[string]int, len(keywords))
	for _, k := range keywords {
		if k.Keyword == "" {
			continue
		}
		if _, ok := have[k.Keyword]; ok {
			continue
		}
		if i, seen := index[k.Keyword]; seen {
			out[i] = k
			continue
		}
		index[k.Keyword] = len(out)
		out = append(out, k)
	}
	return out
}
