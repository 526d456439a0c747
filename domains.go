package clearscrape

// Domain extractor profiles accepted by Extract and WithDomain. The server
// may support profiles not listed here; unknown names are passed through.
const (
	DomainAmazon         = "amazon"
	DomainWalmart        = "walmart"
	DomainGoogle         = "google"
	DomainGoogleShopping = "google_shopping"
	DomainEbay           = "ebay"
	DomainTarget         = "target"
	DomainEtsy           = "etsy"
	DomainBestBuy        = "bestbuy"
	DomainHomeDepot      = "homedepot"
	DomainZillow         = "zillow"
	DomainYelp           = "yelp"
	DomainIndeed         = "indeed"
	DomainLinkedInJobs   = "linkedin_jobs"
)
