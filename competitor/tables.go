package competitor

import "github.com/seo-optimizer/insights/models"

type industryProfile struct {
	names     []string
	strengths []string
	// benchmark is blended with the generated average into industryAverage
	benchmark int
}

var industryProfiles = map[Industry]industryProfile{
	IndustryEcommerce: {
		names:     []string{"ShopSphere", "CartNova", "RetailPeak", "MarketNest", "BuyBright"},
		strengths: []string{"Product page optimization", "Review-rich listings", "Fast checkout experience", "Seasonal promotions", "Shopping feed coverage"},
		benchmark: 68,
	},
	IndustryTechnology: {
		names:     []string{"ByteForge", "CloudLattice", "DevPulse", "StackHarbor", "NexaSoft"},
		strengths: []string{"Technical documentation", "Developer community", "Product-led content", "Comparison pages", "Integration guides"},
		benchmark: 74,
	},
	IndustryMarketing: {
		names:     []string{"BrandLift Media", "RankRocket", "ContentCraft Co", "GrowthGrid", "Signal & Story"},
		strengths: []string{"Thought leadership", "Consistent publishing cadence", "Strong backlink profile", "Social amplification", "Case studies"},
		benchmark: 70,
	},
	IndustryFinance: {
		names:     []string{"LedgerLine", "CapitalCompass", "FinWise Hub", "CoinCrest", "TrustVault"},
		strengths: []string{"Trust signals", "Calculator tools", "Regulatory expertise", "Educational guides", "Brand authority"},
		benchmark: 72,
	},
}

type kindProfile struct {
	opportunities []string
	improvements  []string
	keyArea       string
}

var kindProfiles = map[models.Kind]kindProfile{
	models.KindContent: {
		opportunities: []string{
			"Answer the questions competitors leave unanswered in their content",
			"Earn featured snippets with concise answer summaries",
		},
		improvements: []string{
			"Match the content depth of top-ranking competitor articles",
			"Add original visuals that competitor content lacks",
		},
		keyArea: "Content depth",
	},
	models.KindWebsite: {
		opportunities: []string{
			"Outperform competitors on page speed and Core Web Vitals",
			"Win rich results with structured data competitors do not use",
		},
		improvements: []string{
			"Close the technical SEO gaps found on competitor sites",
			"Improve the mobile experience relative to competitors",
		},
		keyArea: "Technical performance",
	},
	models.KindKeyword: {
		opportunities: []string{
			"Target keyword gaps where competitors have no ranking pages",
			"Cluster related keywords into topic hubs",
		},
		improvements: []string{
			"Broaden keyword coverage to match the market leader",
			"Prioritize keywords with achievable difficulty",
		},
		keyArea: "Keyword coverage",
	},
	models.KindCompetitor: {
		opportunities: []string{
			"Exploit gaps in competitor content freshness",
			"Build links from sources that already cite your competitors",
		},
		improvements: []string{
			"Benchmark against the top competitor every month",
			"Track competitor share of voice across core topics",
		},
		keyArea: "Competitive positioning",
	},
}
