package analyzer

import "github.com/seo-optimizer/insights/models"

type keywordTable struct {
	primary  []string
	longTail []string
	semantic []string
	// seasonalNoun is appended to the month theme, e.g. "black friday keywords"
	seasonalNoun string
}

var keywordTables = map[models.Kind]keywordTable{
	models.KindContent: {
		primary:      []string{"content marketing", "seo content", "blog optimization"},
		longTail:     []string{"how to write seo friendly content", "content marketing strategy for small business", "best practices for blog post optimization"},
		semantic:     []string{"content strategy", "organic traffic", "search rankings", "audience engagement"},
		seasonalNoun: "content ideas",
	},
	models.KindWebsite: {
		primary:      []string{"website seo", "technical seo", "site optimization"},
		longTail:     []string{"how to improve website search rankings", "technical seo audit checklist", "website speed optimization tips"},
		semantic:     []string{"page speed", "core web vitals", "mobile friendliness", "site architecture"},
		seasonalNoun: "website updates",
	},
	models.KindKeyword: {
		primary:      []string{"keyword research", "search volume", "keyword difficulty"},
		longTail:     []string{"how to find low competition keywords", "long tail keyword research tools", "keyword research for beginners"},
		semantic:     []string{"search intent", "keyword clustering", "serp features", "ranking opportunities"},
		seasonalNoun: "keywords",
	},
	models.KindCompetitor: {
		primary:      []string{"competitor analysis", "competitive research", "market positioning"},
		longTail:     []string{"how to analyze competitor seo strategy", "competitor backlink analysis guide", "competitive gap analysis template"},
		semantic:     []string{"market share", "benchmarking", "share of voice", "competitive intelligence"},
		seasonalNoun: "campaigns",
	},
}

// seasonalThemes is indexed by calendar month, January = 0
var seasonalThemes = [12]string{
	"new year", "valentines day", "spring", "easter", "mothers day", "summer",
	"mid year", "back to school", "fall", "halloween", "black friday", "holiday",
}

type trendTable struct {
	evergreen []string
	seasonal  [12][]string
	emerging  []string
}

var trendTables = map[models.Kind]trendTable{
	models.KindContent: {
		evergreen: []string{"#ContentMarketing", "#SEO", "#ContentStrategy"},
		seasonal: [12][]string{
			{"#NewYearContent", "#FreshStart"},
			{"#ValentinesContent", "#LoveYourAudience"},
			{"#SpringRefresh", "#MarchMadnessMarketing"},
			{"#EasterCampaigns", "#SpringStories"},
			{"#MothersDayContent", "#MayMarketing"},
			{"#SummerReads", "#MidYearContent"},
			{"#SummerContent", "#IndependenceDayPromo"},
			{"#BackToSchoolContent", "#LateSummerTips"},
			{"#FallContent", "#SeptemberStrategy"},
			{"#HalloweenContent", "#SpookySeason"},
			{"#BlackFridayContent", "#GratitudePosts"},
			{"#HolidayContent", "#YearInReview"},
		},
		emerging: []string{"#AIContent", "#VoiceSearch", "#ShortFormVideo"},
	},
	models.KindWebsite: {
		evergreen: []string{"#WebDesign", "#TechnicalSEO", "#UX"},
		seasonal: [12][]string{
			{"#NewYearRedesign", "#JanuarySiteAudit"},
			{"#ValentinesLanding", "#FebruaryUX"},
			{"#SpringCleanupSEO", "#CoreWebVitalsCheck"},
			{"#EasterLandingPages", "#AprilSiteRefresh"},
			{"#MayMobileFirst", "#SpringSpeedUp"},
			{"#SummerSiteSpeed", "#JuneUXAudit"},
			{"#JulyTechSEO", "#SummerConversions"},
			{"#BackToSchoolSites", "#AugustAccessibility"},
			{"#FallRedesign", "#SeptemberSEOAudit"},
			{"#HalloweenLanding", "#OctoberSecurity"},
			{"#BlackFridayReady", "#CyberMondayUX"},
			{"#HolidayTraffic", "#YearEndSiteAudit"},
		},
		emerging: []string{"#CoreWebVitals", "#AIOverviews", "#EdgeRendering"},
	},
	models.KindKeyword: {
		evergreen: []string{"#KeywordResearch", "#SEOTips", "#SearchMarketing"},
		seasonal: [12][]string{
			{"#NewYearKeywords", "#ResolutionSearches"},
			{"#ValentinesSearches", "#FebruaryKeywords"},
			{"#SpringKeywords", "#TaxSeasonSearches"},
			{"#EasterKeywords", "#AprilSearchTrends"},
			{"#MothersDayKeywords", "#GraduationSearches"},
			{"#SummerKeywords", "#FathersDaySearches"},
			{"#PrimeDayKeywords", "#JulySearchTrends"},
			{"#BackToSchoolKeywords", "#AugustSearches"},
			{"#FallKeywords", "#LaborDaySearches"},
			{"#HalloweenKeywords", "#CostumeSearches"},
			{"#BlackFridayKeywords", "#CyberMondaySearches"},
			{"#HolidayKeywords", "#GiftGuideSearches"},
		},
		emerging: []string{"#SearchIntent", "#ZeroClickSearch", "#AIOverviews"},
	},
	models.KindCompetitor: {
		evergreen: []string{"#CompetitiveAnalysis", "#MarketResearch", "#Benchmarking"},
		seasonal: [12][]string{
			{"#Q1Benchmarking", "#NewYearCompetition"},
			{"#FebruaryMarketWatch", "#ValentinesCampaigns"},
			{"#SpringMarketShifts", "#Q1Review"},
			{"#Q2Benchmarking", "#AprilMarketWatch"},
			{"#MayCompetitorMoves", "#SpringLaunches"},
			{"#MidYearBenchmark", "#SummerCampaignWatch"},
			{"#Q3Benchmarking", "#JulyMarketWatch"},
			{"#BackToSchoolCampaigns", "#AugustMarketShifts"},
			{"#FallLaunchWatch", "#Q3Review"},
			{"#Q4Benchmarking", "#HalloweenCampaigns"},
			{"#BlackFridayWatch", "#CyberWeekCompetition"},
			{"#HolidayCampaignWatch", "#YearEndBenchmark"},
		},
		emerging: []string{"#MarketIntelligence", "#ShareOfVoice", "#AIForMarketing"},
	},
}

// topicGroup maps whole-word triggers to the tag they contribute
type topicGroup struct {
	name     string
	triggers []string
	tag      string
}

// trendBuckets are scanned in order; at most two contribute a trending tag
var trendBuckets = []topicGroup{
	{name: "ai", triggers: []string{"ai", "artificial intelligence", "machine learning", "chatgpt", "automation"}, tag: "#AI"},
	{name: "social", triggers: []string{"social", "instagram", "tiktok", "facebook", "twitter", "linkedin"}, tag: "#SocialMedia"},
	{name: "mobile", triggers: []string{"mobile", "app", "smartphone", "ios", "android"}, tag: "#MobileFirst"},
	{name: "video", triggers: []string{"video", "youtube", "reels", "streaming"}, tag: "#VideoMarketing"},
	{name: "ecommerce", triggers: []string{"ecommerce", "e-commerce", "shop", "store", "retail", "product"}, tag: "#Ecommerce"},
}

type hashtagTable struct {
	core     []string
	trending []string
	niche    []string
}

var hashtagTables = map[models.Kind]hashtagTable{
	models.KindContent: {
		core:     []string{"#Content", "#Blogging", "#Writing"},
		trending: []string{"#ContentCreator", "#StoryTelling"},
		niche:    []string{"#LongFormContent", "#EvergreenContent", "#CopywritingTips"},
	},
	models.KindWebsite: {
		core:     []string{"#Website", "#WebDevelopment", "#SEO"},
		trending: []string{"#WebPerformance", "#Accessibility"},
		niche:    []string{"#SchemaMarkup", "#SiteSpeed", "#MobileUX"},
	},
	models.KindKeyword: {
		core:     []string{"#Keywords", "#SEO", "#SearchEngine"},
		trending: []string{"#SearchTrends", "#SEOStrategy"},
		niche:    []string{"#LongTailKeywords", "#KeywordClusters", "#SERP"},
	},
	models.KindCompetitor: {
		core:     []string{"#Competition", "#Strategy", "#Marketing"},
		trending: []string{"#GrowthMarketing", "#MarketTrends"},
		niche:    []string{"#CompetitorResearch", "#GapAnalysis", "#BrandPositioning"},
	},
}

// hashtagGroups are scanned in order; at most two contribute a hashtag
var hashtagGroups = []topicGroup{
	{name: "technology", triggers: []string{"tech", "software", "digital", "code", "developer", "cloud"}, tag: "#TechTrends"},
	{name: "business", triggers: []string{"business", "startup", "entrepreneur", "company", "growth"}, tag: "#SmallBusiness"},
	{name: "marketing", triggers: []string{"marketing", "brand", "campaign", "advertising", "audience"}, tag: "#DigitalMarketing"},
	{name: "design", triggers: []string{"design", "ui", "ux", "creative", "visual"}, tag: "#DesignThinking"},
	{name: "ecommerce", triggers: []string{"ecommerce", "shop", "store", "sell", "product"}, tag: "#OnlineStore"},
}

// stopWords only lists words longer than three characters; shorter tokens
// are dropped before the lookup.
var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "also": {}, "been": {}, "because": {}, "before": {},
	"being": {}, "could": {}, "does": {}, "each": {}, "from": {}, "have": {},
	"here": {}, "into": {}, "just": {}, "like": {}, "made": {}, "make": {},
	"many": {}, "more": {}, "most": {}, "much": {}, "only": {}, "other": {},
	"over": {}, "same": {}, "should": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "very": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {}, "with": {},
	"would": {}, "your": {},
}
