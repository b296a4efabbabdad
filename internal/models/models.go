package models

import "time"

// ScrapeRequest is the body of a POST /scrape call.
type ScrapeRequest struct {
	URL    string `json:"url"`
	DealID string `json:"dealId"`
}

// Listing is the flat record produced by one extraction pass. Fields are
// best-effort: anything the page did not yield is simply absent from the
// JSON, and FieldsExtracted records what was found, in attempt order.
type Listing struct {
	BusinessName        string  `json:"business_name"`
	Location            string  `json:"location,omitempty"`
	AskingPrice         float64 `json:"asking_price,omitempty"`
	CashFlow            float64 `json:"cash_flow,omitempty"`
	GrossRevenue        float64 `json:"gross_revenue,omitempty"`
	EBITDA              float64 `json:"ebitda,omitempty"`
	BusinessDescription string  `json:"business_description,omitempty"`
	Rent                float64 `json:"rent,omitempty"`
	Established         int     `json:"established,omitempty"`
	Employees           int     `json:"employees,omitempty"`
	BuildingSF          int     `json:"building_sf,omitempty"`
	Inventory           float64 `json:"inventory,omitempty"`
	Franchise           string  `json:"franchise,omitempty"`
	ReasonForSelling    string  `json:"reason_for_selling,omitempty"`

	FieldsExtracted   []string `json:"fields_extracted"`
	ParsingConfidence float64  `json:"parsing_confidence"`

	SourceType string    `json:"source_type,omitempty"`
	SourceURL  string    `json:"source_url,omitempty"`
	ParsedAt   time.Time `json:"parsed_at,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Browser   bool      `json:"browser"`
	Timestamp time.Time `json:"timestamp"`
}

// ClassifyRequest is the body of a POST /classify-industry call.
type ClassifyRequest struct {
	Description string `json:"description"`
}

// IndustryResult is the classification reply, either from the external
// API or the fixed fallback.
type IndustryResult struct {
	Industry   string  `json:"industry"`
	Confidence float64 `json:"confidence"`
}

// ErrorResponse represents error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
