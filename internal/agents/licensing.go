// agents/licensing.go defines the licensing-code watcher: business
// licensing regulation feeds, OSS system announcements, and trade press.
package agents

import "github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"

func licensingWatch() domain.Agent {
	return domain.Agent{
		Slug:     "licensing-watch",
		Label:    "Business Licensing Watch",
		CronExpr: "0 6 * * *",
		Sources: []domain.IntelSource{
			{
				ID:              "oss-news",
				Label:           "OSS System Announcements",
				FetchKind:       domain.FetchKindFeed,
				Endpoint:        "https://oss.go.id/informasi/rss",
				PollMinutes:     720,
				DefaultPriority: domain.PriorityHigh,
			},
			{
				ID:              "bkpm-press",
				Label:           "Investment Ministry Press",
				FetchKind:       domain.FetchKindFeed,
				Endpoint:        "https://www.bkpm.go.id/press/rss",
				PollMinutes:     1440,
				DefaultPriority: domain.PriorityMedium,
			},
			{
				ID:              "trade-press",
				Label:           "Trade Press Aggregator",
				FetchKind:       domain.FetchKindFeed,
				Endpoint:        "https://news.google.com/rss/search?q=kbli+oss+perizinan",
				PollMinutes:     1440,
				DefaultPriority: domain.PriorityLow,
			},
		},
		Options: domain.NormalizationOptions{
			AgentSlug: "licensing-watch",
			Classification: domain.ClassificationRules{
				ConfidentialKeywords: []string{
					"draft regulation", "rancangan", "internal memo", "pre-release",
				},
				InternalKeywords: []string{
					"izin", "nib", "compliance deadline", "enforcement", "sanction",
				},
				PublicKeywords: []string{
					"kbli", "oss", "licensing", "announcement", "press release",
				},
			},
			Relevance: domain.RelevanceRules{
				BaseScore: 40,
				HighImpactKeywords: []string{
					"mandatory", "revoked", "wajib", "deadline", "new requirement",
				},
				MediumImpactKeywords: []string{
					"updated", "guidance", "clarification", "extension",
				},
				DecayDays: 14,
			},
			EnrichTags: []string{"licensing", "business"},
		},
	}
}
