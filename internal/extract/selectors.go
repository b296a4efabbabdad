package extract

// CSS selector candidates for the target listing layout, most to least
// specific. Structural changes on the site degrade extraction quality
// rather than failing it, so these lists end in broad fallbacks.

// BusinessNameSelectors locate the listing title.
var BusinessNameSelectors = []string{
	"h1.bfsTitle",
	"h1[class*='title']",
	".listing-header h1",
	"h1",
}

// LocationSelectors locate the "City, State" line; only comma-containing
// text is accepted from these.
var LocationSelectors = []string{
	".location",
	"[class*='location']",
	".listing-header h2",
	"h2",
}

// DescriptionSelectors locate the long-form business description.
var DescriptionSelectors = []string{
	".businessDescription",
	"[class*='description']",
	"#business-description",
	".listing-profile p",
}

// ListingLoadedSelectors are the candidates the behavior simulator waits
// on to decide that dynamic content has rendered.
var ListingLoadedSelectors = []string{
	"h1.bfsTitle",
	".listing-profile",
	"[class*='asking']",
	"h1",
}
