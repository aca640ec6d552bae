package analyzer

import (
	"github.com/cosmolaser/content-gap/internal/model"
	"github.com/cosmolaser/content-gap/pkg/dataforseo"
)

// rankedKeywords flattens every ranked item of a response into keyword records.
func rankedKeywords(results []dataforseo.RankedKeywordsResult) []model.Keyword {
	var out []model.Keyword
	for _, r := range results {
		for _, it := range r.Items {
			out = append(out, fromRanked(it))
		}
	}
	return out
}

func fromRanked(it dataforseo.RankedItem) model.Keyword {
	k := fromInfo(it.KeywordData.Keyword, it.KeywordData.KeywordInfo)
	serp := it.RankedSERPElement.SERPItem
	if serp.RankAbsolute != nil {
		k.Rank = *serp.RankAbsolute
	}
	k.URL = serp.URL
	k.Title = serp.Title
	return k
}

// ideaKeywords converts keyword_ideas items into keyword records.
func ideaKeywords(results []dataforseo.KeywordIdeasResult) []model.Keyword {
	var out []model.Keyword
	for _, r := range results {
		for _, it := range r.Items {
			out = append(out, fromInfo(it.Keyword, it.KeywordInfo))
		}
	}
	return out
}

func fromInfo(keyword string, info dataforseo.KeywordInfo) model.Keyword {
	k := model.Keyword{
		Keyword:          keyword,
		CompetitionLevel: info.CompetitionLevel,
	}
	if info.SearchVolume != nil {
		k.SearchVolume = *info.SearchVolume
	}
	if info.Competition != nil {
		k.Competition = *info.Competition
	}
	if info.CPC != nil {
		k.CPC = *info.CPC
	}
	return k
}
