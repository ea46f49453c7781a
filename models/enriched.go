package models

import "strconv"

// Output column names.
const (
	ColPersonalizationHook = "Personalization Hook"
	ColTopPaperTitle       = "Top Paper Title"
	ColTopPaperDate        = "Top Paper Year/Date"
	ColTopics              = "Topics"
	ColMatchedAuthor       = "Matched Author Source/Name/Affiliations"
	ColConfidenceScore     = "Confidence Score"
	ColHookSource          = "Hook Source"
	ColPersonWorkLine      = "Person Work Line"
	ColPersonWorkSource    = "Person Work Source"
	ColCompanySummaryLine  = "Company Summary Line"
	ColCompanySummarySrc   = "Company Summary Source"
	ColDebugNameUsed       = "Debug Name Used"
	ColDebugAuthorMatched  = "Debug Author Matched"
	ColDebugMatchScore     = "Debug Match Score"
	ColDebugPapersFound    = "Debug Papers Found"
)

// EnrichedColumns lists every output column in emission order.
var EnrichedColumns = []string{
	ColPersonalizationHook,
	ColTopPaperTitle,
	ColTopPaperDate,
	ColTopics,
	ColMatchedAuthor,
	ColConfidenceScore,
	ColHookSource,
	ColPersonWorkLine,
	ColPersonWorkSource,
	ColCompanySummaryLine,
	ColCompanySummarySrc,
	ColDebugNameUsed,
	ColDebugAuthorMatched,
	ColDebugMatchScore,
	ColDebugPapersFound,
}

// Source tags for the work and summary lines.
const (
	SourceNone    = "none"
	SourcePapers  = "papers"
	SourceWebsite = "website"
	HookInternal  = "Internal"
)

// EnrichedFields is the per-row enrichment bundle. It is what gets cached,
// so the JSON tags double as the cache format.
type EnrichedFields struct {
	PersonalizationHook string `json:"Personalization Hook"`
	TopPaperTitle       string `json:"Top Paper Title"`
	TopPaperDate        string `json:"Top Paper Year/Date"`
	Topics              string `json:"Topics"`
	MatchedAuthor       string `json:"Matched Author Source/Name/Affiliations"`
	ConfidenceScore     string `json:"Confidence Score"`
	HookSource          string `json:"Hook Source"`
	PersonWorkLine      string `json:"Person Work Line"`
	PersonWorkSource    string `json:"Person Work Source"`
	CompanySummaryLine  string `json:"Company Summary Line"`
	CompanySummarySrc   string `json:"Company Summary Source"`
	DebugNameUsed       string `json:"Debug Name Used"`
	DebugAuthorMatched  bool   `json:"Debug Author Matched"`
	DebugMatchScore     int    `json:"Debug Match Score"`
	DebugPapersFound    bool   `json:"Debug Papers Found"`
}

// Columns renders the fields as output cells keyed by column name.
func (e EnrichedFields) Columns() map[string]string {
	return map[string]string{
		ColPersonalizationHook: e.PersonalizationHook,
		ColTopPaperTitle:       e.TopPaperTitle,
		ColTopPaperDate:        e.TopPaperDate,
		ColTopics:              e.Topics,
		ColMatchedAuthor:       e.MatchedAuthor,
		ColConfidenceScore:     e.ConfidenceScore,
		ColHookSource:          e.HookSource,
		ColPersonWorkLine:      e.PersonWorkLine,
		ColPersonWorkSource:    e.PersonWorkSource,
		ColCompanySummaryLine:  e.CompanySummaryLine,
		ColCompanySummarySrc:   e.CompanySummarySrc,
		ColDebugNameUsed:       e.DebugNameUsed,
		ColDebugAuthorMatched:  strconv.FormatBool(e.DebugAuthorMatched),
		ColDebugMatchScore:     strconv.Itoa(e.DebugMatchScore),
		ColDebugPapersFound:    strconv.FormatBool(e.DebugPapersFound),
	}
}

// EnrichedRow is a lead merged with its enrichment. Match is only filled
// on a fresh lookup; cache hits carry the cached fields alone.
type EnrichedRow struct {
	Record   LeadRecord
	Fields   EnrichedFields
	Match    MatchResult
	CacheHit bool
}
