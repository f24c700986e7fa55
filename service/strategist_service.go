package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"oakfield-backend/engine"
	"oakfield-backend/models"
	"oakfield-backend/repository"
	"oakfield-backend/utils"
)

// contextFetchLimit caps how many baskets are pulled into an analyst context
const contextFetchLimit = 500

// intentKeywords maps query keywords to an analyst intent. Scanned in order,
// first match wins, so more specific phrases come before their substrings.
var intentKeywords = []struct {
	keyword string
	intent  string
}{
	{"margin summary", "margin"},
	{"margin", "margin"},
	{"bundle", "bundle"},
	{"upsell", "bundle"},
	{"missed", "bundle"},
	{"opportunity", "bundle"},
	{"development", "development"},
	{"site", "development"},
	{"region", "development"},
	{"eligib", "eligibility"},
	{"stage", "eligibility"},
	{"option", "options"},
	{"catalogue", "options"},
	{"house type", "house_types"},
	{"house", "house_types"},
	{"beds", "house_types"},
}

// StrategistService is the analyst assistant. It detects what a query is
// about, pulls only the relevant catalogue and basket data, and streams a
// structured JSON answer from the language model.
type StrategistService struct {
	developments repository.DevelopmentRepositoryInterface
	houseTypes   repository.HouseTypeRepositoryInterface
	options      repository.OptionRepositoryInterface
	bundles      repository.BundleRepositoryInterface
	baskets      repository.BasketRepositoryInterface
	llm          *LLMService
}

// NewStrategistService creates a new StrategistService
func NewStrategistService(
	developments repository.DevelopmentRepositoryInterface,
	houseTypes repository.HouseTypeRepositoryInterface,
	options repository.OptionRepositoryInterface,
	bundles repository.BundleRepositoryInterface,
	baskets repository.BasketRepositoryInterface,
	llm *LLMService,
) *StrategistService {
	return &StrategistService{
		developments: developments,
		houseTypes:   houseTypes,
		options:      options,
		bundles:      bundles,
		baskets:      baskets,
		llm:          llm,
	}
}

// DetectIntent scans the query for analyst keywords.
// Returns one of: margin, bundle, development, eligibility, options,
// house_types or general.
func (s *StrategistService) DetectIntent(query string) string {
	lower := strings.ToLower(query)
	for _, entry := range intentKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.intent
		}
	}
	return "general"
}

// marginSummary recomputes the per-development margin report from live baskets
func (s *StrategistService) marginSummary(ctx context.Context) (models.MarginSummaryReport, error) {
	baskets, err := s.baskets.Filter(ctx, models.BasketFilterParams{}, 0, contextFetchLimit)
	if err != nil {
		return models.MarginSummaryReport{}, err
	}
	return engine.SummarizeMargins(baskets), nil
}

// missedOpportunities recomputes the missed bundle report from live baskets
func (s *StrategistService) missedOpportunities(ctx context.Context) (models.OpportunityReport, error) {
	baskets, err := s.baskets.Filter(ctx, models.BasketFilterParams{}, 0, contextFetchLimit)
	if err != nil {
		return models.OpportunityReport{}, err
	}
	bundlesByCode, err := s.bundles.GetAllByCode(ctx)
	if err != nil {
		return models.OpportunityReport{}, err
	}
	return engine.FindMissedOpportunities(baskets, bundlesByCode), nil
}

// opportunityRows renders missed opportunities as display-ready table rows
func opportunityRows(report models.OpportunityReport) [][]string {
	rows := make([][]string, 0, len(report.Data))
	for _, opp := range report.Data {
		dev := engine.UnknownDevelopment
		if opp.DevelopmentCode != nil {
			dev = *opp.DevelopmentCode
		}
		rows = append(rows, []string{
			opp.PlotReference,
			dev,
			strings.Join(opp.TriggeredBundles, ", "),
			utils.FormatGBP(opp.EstimatedMissedRevenue),
		})
	}
	return rows
}

// buildContext fetches only the data relevant to the detected intent.
// The result is JSON-serialised into the analyst prompt.
func (s *StrategistService) buildContext(ctx context.Context, query string) (map[string]any, error) {
	intent := s.DetectIntent(query)

	switch intent {
	case "margin":
		summary, err := s.marginSummary(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"intent": "margin_analysis",
			"data":   summary,
		}, nil

	case "bundle":
		report, err := s.missedOpportunities(ctx)
		if err != nil {
			return nil, err
		}
		bundles, err := s.bundles.List(ctx, 0, contextFetchLimit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"intent":     "bundle_opportunity_analysis",
			"data":       report,
			"table_rows": opportunityRows(report),
			"bundles":    bundles,
		}, nil

	case "development":
		developments, err := s.developments.List(ctx, nil, nil, 0, contextFetchLimit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"intent": "development_overview",
			"data":   developments,
		}, nil

	case "eligibility":
		baskets, err := s.baskets.Filter(ctx, models.BasketFilterParams{}, 0, contextFetchLimit)
		if err != nil {
			return nil, err
		}
		bundles, err := s.bundles.List(ctx, 0, contextFetchLimit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"intent":  "eligibility_overview",
			"baskets": baskets,
			"bundles": bundles,
		}, nil

	case "options":
		options, err := s.options.List(ctx, nil, 0, contextFetchLimit)
		if err != nil {
			return nil, err
		}
		byCategory := make(map[string][]models.Option)
		for _, opt := range options {
			byCategory[opt.Category] = append(byCategory[opt.Category], opt)
		}
		return map[string]any{
			"intent": "options_catalogue",
			"data":   byCategory,
		}, nil

	case "house_types":
		houseTypes, err := s.houseTypes.List(ctx, nil, 0, contextFetchLimit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"intent": "house_type_overview",
			"data":   houseTypes,
		}, nil
	}

	// General fallback provides a lightweight overview
	summary, err := s.marginSummary(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.missedOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	developments, err := s.developments.List(ctx, nil, nil, 0, contextFetchLimit)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"intent":            "general",
		"margin_summary":    summary,
		"missed_bundles":    report,
		"development_count": len(developments),
	}, nil
}

const analystPromptTemplate = `ROLE:
You are the 'Oakfield Strategist', an AI analyst for a UK homebuilder.
Your job is to analyse option basket performance, margin health, and bundle upsell opportunities
across Oakfield's residential developments.

OAKFIELD CONTEXT (from live database):
%s

USER QUERY:
"%s"

STRICT RULES:
1. OUTPUT: You must output ONLY valid JSON. No markdown. No preamble.
2. GROUNDING: Use only the numbers from OAKFIELD CONTEXT above. Do not invent data.
3. If OAKFIELD CONTEXT contains no relevant data, say so clearly in a summary block.
4. VISUALISATION:
   - Use 'bar' charts for comparing developments or categories.
   - Use 'pie' charts for share/distribution breakdowns.
   - Use 'area' charts for trends over time (only if time-series data is present).
   - Use 'table' blocks for itemised lists (e.g. missed bundle opportunities).
5. FOCUS: You analyse margin performance and bundle upsell opportunities only.

RESPONSE SCHEMA (JSON):
{
    "type": "analysis_response",
    "title": "Short, specific headline",
    "blocks": [
        { "type": "summary", "text": "Concise analysis using bullet points" },
        { "type": "metrics", "items": [ { "label": "Avg Margin %%", "value": "32%%", "change": "+2%%" } ] },
        { "type": "chart", "title": "Margin by Development", "chartType": "bar",
          "data": [ { "name": "Poppyfield Lane", "value": 34.2 } ], "color": "emerald" },
        { "type": "table", "title": "Missed Bundle Opportunities",
          "columns": ["Plot", "Development", "Triggered Bundles", "Missed Revenue"],
          "rows": [ ["PL-204", "PL-001", "BNDL-KITCHEN", "£1,200"] ] },
        { "type": "recommendation", "title": "Action Required", "text": "Specific recommendation...",
          "actions": [ { "label": "View Baskets", "route": "/oakfield/baskets", "type": "navigation" } ] }
    ]
}`

// Chat streams a structured analyst answer for a query. Data access failures
// and model failures are both surfaced to the client as an error payload in
// the same schema as a normal answer, so the stream never just goes silent.
func (s *StrategistService) Chat(ctx context.Context, query string, onChunk func(string)) {
	analystContext, err := s.buildContext(ctx, query)
	if err != nil {
		log.Printf("❌ Failed to build strategist context: %v", err)
		onChunk(errorPayload(err))
		return
	}

	contextJSON, err := json.MarshalIndent(analystContext, "", "  ")
	if err != nil {
		onChunk(errorPayload(err))
		return
	}

	messages := []Message{
		{Role: "system", Content: "You are a JSON-only Oakfield homebuilder analyst."},
		{Role: "user", Content: fmt.Sprintf(analystPromptTemplate, contextJSON, query)},
	}

	if err := s.llm.StreamChat(ctx, messages, onChunk); err != nil {
		log.Printf("❌ Strategist stream failed: %v", err)
		onChunk(errorPayload(err))
	}
}

// errorPayload renders a failure in the analyst response schema
func errorPayload(err error) string {
	payload := map[string]any{
		"type":  "analysis_response",
		"title": "System Error",
		"blocks": []map[string]any{
			{
				"type": "summary",
				"text": fmt.Sprintf("The Oakfield Strategist encountered an error: %v", err),
			},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}
