// agents/visa.go defines the visa-regulation watcher: immigration
// directorate feeds and expat press.
package agents

import "github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"

func visaWatch() domain.Agent {
	return domain.Agent{
		Slug:     "visa-watch",
		Label:    "Visa & Immigration Watch",
		CronExpr: "30 6 * * *",
		Sources: []domain.IntelSource{
			{
				ID:              "imigrasi-news",
				Label:           "Immigration Directorate News",
				FetchKind:       domain.FetchKindFeed,
				Endpoint:        "https://www.imigrasi.go.id/berita/rss",
				PollMinutes:     720,
				DefaultPriority: domain.PriorityHigh,
			},
			{
				ID:              "expat-press",
				Label:           "Expat Press Aggregator",
				FetchKind:       domain.FetchKindFeed,
				Endpoint:        "https://news.google.com/rss/search?q=kitas+visa+indonesia",
				PollMinutes:     1440,
				DefaultPriority: domain.PriorityLow,
			},
		},
		Options: domain.NormalizationOptions{
			AgentSlug: "visa-watch",
			Classification: domain.ClassificationRules{
				ConfidentialKeywords: []string{
					"draft circular", "internal directive", "unpublished",
				},
				InternalKeywords: []string{
					"kitas", "kitap", "overstay", "sponsor obligation", "deportation",
				},
				PublicKeywords: []string{
					"visa", "immigration", "e-visa", "golden visa", "announcement",
				},
			},
			Relevance: domain.RelevanceRules{
				BaseScore: 40,
				HighImpactKeywords: []string{
					"suspended", "mandatory", "effective immediately", "new policy",
				},
				MediumImpactKeywords: []string{
					"fee change", "processing time", "requirement", "extension",
				},
				DecayDays: 10,
			},
			EnrichTags: []string{"visa", "immigration"},
		},
	}
}
