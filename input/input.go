package input

// Input is a request described by a reqline.
type Input struct {
	Method  Method `json:"method"`
	URL     string `json:"url"`
	Headers Object `json:"headers"`
	Query   Object `json:"query"`
	Body    Object `json:"body"`
}

type Method string

const (
	MethodGet  = Method("GET")
	MethodPost = Method("POST")
)

// Keyword introduces a section of a reqline.
type Keyword string

const (
	KeywordHTTP    = Keyword("HTTP")
	KeywordURL     = Keyword("URL")
	KeywordHeaders = Keyword("HEADERS")
	KeywordQuery   = Keyword("QUERY")
	KeywordBody    = Keyword("BODY")
)

var allowedKeywords = []Keyword{KeywordHTTP, KeywordURL, KeywordHeaders, KeywordQuery, KeywordBody}

func isAllowedKeyword(s string) bool {
	for _, k := range allowedKeywords {
		if string(k) == s {
			return true
		}
	}
	return false
}
