package extract

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/models"
)

const (
	// PlaceholderName is used when no title selector matches.
	PlaceholderName = "Unknown Business"

	// maxFieldsAttempted normalizes the confidence score. It is the total
	// number of distinct fields the extractor has ever attempted and stays
	// fixed even when the attempted set shrinks.
	maxFieldsAttempted = 22

	minDescriptionLen = 50
	readabilityMinLen = 200
	maxDescriptionLen = 2000
	maxFranchiseLen   = 200
	maxReasonLen      = 500

	minAskingPrice = 10_000
	minFinancial   = 1_000
	minEstablished = 1900
	maxEmployees   = 10_000
)

// financial fields are scanned in this order; each pairs label keywords
// with a sanity threshold the parsed value must exceed.
var financialFields = []struct {
	name   string
	labels []string
	min    float64
	assign func(*models.Listing, float64)
}{
	{"asking_price", []string{"asking price", "price:"}, minAskingPrice, func(l *models.Listing, v float64) { l.AskingPrice = v }},
	{"cash_flow", []string{"cash flow", "sde"}, minFinancial, func(l *models.Listing, v float64) { l.CashFlow = v }},
	{"gross_revenue", []string{"gross revenue", "revenue"}, minFinancial, func(l *models.Listing, v float64) { l.GrossRevenue = v }},
	{"ebitda", []string{"ebitda"}, minFinancial, func(l *models.Listing, v float64) { l.EBITDA = v }},
}

// Extractor produces one Listing from rendered page HTML. It is read-only
// and never retries a failed match within a request.
type Extractor struct {
	sanitizer *bluemonday.Policy
	regexes   map[string]*regexp.Regexp
	now       func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{
		sanitizer: bluemonday.StrictPolicy(),
		regexes:   config.CompileRegexes(),
		now:       time.Now,
	}
}

// Extract walks the document in a fixed attempt order. Every successful
// step appends its field name to FieldsExtracted; first success wins for
// single-valued fields. Partial extraction is not an error.
func (e *Extractor) Extract(pageHTML, pageURL string) models.Listing {
	listing := models.Listing{
		BusinessName:    PlaceholderName,
		FieldsExtracted: []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return listing
	}

	fullText := doc.Find("body").Text()
	if fullText == "" {
		fullText = doc.Text()
	}

	found := func(name string) {
		listing.FieldsExtracted = append(listing.FieldsExtracted, name)
	}

	if name := firstSelectorText(doc, BusinessNameSelectors, nil); name != "" {
		listing.BusinessName = name
		found("business_name")
	}

	if loc := e.extractLocation(doc, fullText); loc != "" {
		listing.Location = loc
		found("location")
	}

	for _, field := range financialFields {
		if value, ok := e.scanFinancial(doc, field.labels, field.min); ok {
			field.assign(&listing, value)
			found(field.name)
		}
	}

	if desc := e.extractDescription(doc, pageHTML, pageURL); desc != "" {
		listing.BusinessDescription = desc
		found("business_description")
	}

	e.scanSecondary(fullText, &listing, found)

	listing.ParsingConfidence = float64(len(listing.FieldsExtracted)) / maxFieldsAttempted
	if listing.ParsingConfidence > 1.0 {
		listing.ParsingConfidence = 1.0
	}

	return listing
}

// firstSelectorText returns the cleaned text of the first selector that
// matches; accept, when non-nil, can veto a candidate.
func firstSelectorText(doc *goquery.Document, selectors []string, accept func(string) bool) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := CleanText(sel.Text())
		if text == "" {
			continue
		}
		if accept != nil && !accept(text) {
			continue
		}
		return text
	}
	return ""
}

func (e *Extractor) extractLocation(doc *goquery.Document, fullText string) string {
	loc := firstSelectorText(doc, LocationSelectors, func(text string) bool {
		return strings.Contains(text, ",")
	})
	if loc != "" {
		return loc
	}

	// Fall back to a "Capitalized Words, XX" scan of the whole page.
	if m := e.regexes["cityState"].FindStringSubmatch(fullText); m != nil {
		return CleanText(m[1]) + ", " + m[2]
	}
	return ""
}

// scanFinancial walks every element in document order looking for one
// whose text carries both a currency symbol and a qualifying label, and
// parses the first currency token following the label. Containers match
// before their children, so the result is traversal-order dependent; the
// after-the-label rule keeps a container from answering with a sibling
// field's figure. Runs once per request, O(labels x nodes).
func (e *Extractor) scanFinancial(doc *goquery.Document, labels []string, min float64) (float64, bool) {
	var value float64
	ok := false

	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "$") {
			return true
		}
		lower := strings.ToLower(text)
		for _, label := range labels {
			idx := strings.Index(lower, label)
			if idx < 0 {
				continue
			}
			raw := e.regexes["currency"].FindString(lower[idx:])
			if raw == "" {
				continue
			}
			parsed, parsedOK := ParseCurrency(raw)
			if !parsedOK || parsed <= min {
				continue
			}
			value, ok = parsed, true
			return false
		}
		return true
	})

	return value, ok
}

func (e *Extractor) extractDescription(doc *goquery.Document, pageHTML, pageURL string) string {
	for _, selector := range DescriptionSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if desc := e.sanitizeDescription(sel.Text()); desc != "" {
			return desc
		}
	}

	// None of the selectors produced enough text; let readability pull the
	// main content block instead.
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(pageHTML), parsed)
	if err != nil {
		return ""
	}
	// Readability sees the whole page, so demand more substance than the
	// targeted selectors before trusting its output.
	desc := e.sanitizeDescription(article.TextContent)
	if utf8.RuneCountInString(desc) < readabilityMinLen {
		return ""
	}
	return desc
}

// sanitizeDescription strips any markup, unescapes entities, and applies
// the minimum-length and truncation rules.
func (e *Extractor) sanitizeDescription(text string) string {
	cleaned := CleanText(html.UnescapeString(e.sanitizer.Sanitize(text)))
	if utf8.RuneCountInString(cleaned) <= minDescriptionLen {
		return ""
	}
	return truncate(cleaned, maxDescriptionLen)
}

// scanSecondary pulls the remaining attributes out of the full page text
// with single-shot regex matches.
func (e *Extractor) scanSecondary(fullText string, listing *models.Listing, found func(string)) {
	if m := e.regexes["rent"].FindStringSubmatch(fullText); m != nil {
		if v, ok := ParseCurrency(m[1]); ok && v > 0 {
			listing.Rent = v
			found("rent")
		}
	}

	if m := e.regexes["established"].FindStringSubmatch(fullText); m != nil {
		if year, ok := ParseInteger(m[1]); ok && year >= minEstablished && year <= e.now().Year() {
			listing.Established = year
			found("established")
		}
	}

	if m := e.regexes["employees"].FindStringSubmatch(fullText); m != nil {
		if n, ok := ParseInteger(m[1]); ok && n > 0 && n < maxEmployees {
			listing.Employees = n
			found("employees")
		}
	}

	if m := e.regexes["buildingSF"].FindStringSubmatch(fullText); m != nil {
		if n, ok := ParseInteger(m[1]); ok && n > 0 {
			listing.BuildingSF = n
			found("building_sf")
		}
	}

	if m := e.regexes["inventory"].FindStringSubmatch(fullText); m != nil {
		if v, ok := ParseCurrency(m[1]); ok && v > 0 {
			listing.Inventory = v
			found("inventory")
		}
	}

	if strings.Contains(strings.ToLower(fullText), "franchise") {
		if m := e.regexes["franchise"].FindStringSubmatch(fullText); m != nil {
			if text := CleanText(m[1]); text != "" {
				listing.Franchise = truncate(text, maxFranchiseLen)
				found("franchise")
			}
		}
	}

	if m := e.regexes["reason"].FindStringSubmatch(fullText); m != nil {
		if text := CleanText(m[1]); text != "" {
			listing.ReasonForSelling = truncate(text, maxReasonLen)
			found("reason_for_selling")
		}
	}
}

// truncate caps s at max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
