// Package input parses reqlines, a single-line description of an HTTP request.
//
// Grammar:
//
//	reqline = section { " | " section }
//	section = keyword " " value
//	keyword = "HTTP" | "URL" | "HEADERS" | "QUERY" | "BODY"
//
// HTTP must be the first section and URL the second. HEADERS, QUERY and BODY are
// optional, may appear in any order after URL, and carry a JSON object. A pipe inside
// double quotes, or preceded by a backslash, does not separate sections.
package input

import (
	"strings"
)

// ParseReqline parses raw into an Input. The returned error, if any, carries a
// *ParseError (see AsParseError).
func ParseReqline(raw string) (*Input, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, newParseError(MissingHTTPKeyword)
	}

	segments, err := splitSegments(trimmed)
	if err != nil {
		return nil, err
	}
	switch len(segments) {
	case 0:
		return nil, newParseError(MissingHTTPKeyword)
	case 1:
		return nil, newParseError(MissingURLKeyword)
	}

	in := Input{}
	seen := make(map[Keyword]bool, len(segments))
	for idx, segment := range segments {
		keyword, value, err := splitSegment(segment)
		if err != nil {
			return nil, err
		}

		if seen[keyword] {
			return nil, newKeywordError(DuplicateKeyword, string(keyword))
		}
		seen[keyword] = true

		if keyword == KeywordHTTP && idx != 0 {
			return nil, missingKeywordError(KeywordHTTP)
		}
		if keyword == KeywordURL && idx != 1 {
			return nil, missingKeywordError(KeywordURL)
		}

		if err := parseSection(keyword, value, &in); err != nil {
			return nil, err
		}
	}

	for _, keyword := range []Keyword{KeywordHTTP, KeywordURL} {
		if !seen[keyword] {
			return nil, missingKeywordError(keyword)
		}
	}

	return &in, nil
}

// splitSegments splits s on every " | " that is neither escaped nor quoted.
// Backslashes and quotes are kept in the segments as they are.
func splitSegments(s string) ([]string, error) {
	var segments []string
	var current strings.Builder
	escaped := false
	inQuotes := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			current.WriteByte(c)
			escaped = false
		case c == '\\':
			current.WriteByte(c)
			escaped = true
		case c == '"':
			current.WriteByte(c)
			inQuotes = !inQuotes
		case c == '|' && !inQuotes:
			if i == 0 || s[i-1] != ' ' {
				return nil, newParseError(InvalidPipeSpacing)
			}
			if i == len(s)-1 || s[i+1] != ' ' {
				return nil, newParseError(InvalidPipeSpacing)
			}
			segments = append(segments, strings.TrimSpace(current.String()))
			current.Reset()
			i++ // the space after the pipe
		default:
			current.WriteByte(c)
		}
	}

	if current.Len() > 0 {
		segments = append(segments, strings.TrimSpace(current.String()))
	}
	return segments, nil
}

func splitSegment(segment string) (Keyword, string, error) {
	firstSpace := strings.IndexByte(segment, ' ')
	if firstSpace == -1 {
		return "", "", newParseError(MissingSpaceAfterKeyword)
	}
	if strings.Contains(segment, "  ") {
		return "", "", newParseError(MultipleSpaces)
	}

	keyword := segment[:firstSpace]
	if !isAllowedKeyword(keyword) {
		if isAllowedKeyword(strings.ToUpper(keyword)) {
			return "", "", newParseError(LowercaseKeyword)
		}
		return "", "", newKeywordError(UnknownKeyword, keyword)
	}
	return Keyword(keyword), segment[firstSpace+1:], nil
}

func parseSection(keyword Keyword, value string, in *Input) error {
	var err error
	switch keyword {
	case KeywordHTTP:
		in.Method, err = parseMethod(value)
	case KeywordURL:
		in.URL, err = parseURL(value)
	case KeywordHeaders:
		in.Headers, err = decodeSection(keyword, value)
	case KeywordQuery:
		in.Query, err = decodeSection(keyword, value)
	case KeywordBody:
		in.Body, err = decodeSection(keyword, value)
	}
	return err
}

func parseMethod(value string) (Method, error) {
	method := strings.TrimSpace(value)
	switch method {
	case "":
		return "", newParseError(MissingMethod)
	case string(MethodGet), string(MethodPost):
		return Method(method), nil
	}

	lower := strings.ToLower(method)
	if lower == "get" || lower == "post" {
		return "", newParseError(LowercaseMethod)
	}
	return "", newParseError(UnsupportedMethod)
}

func parseURL(value string) (string, error) {
	u := strings.TrimSpace(value)
	if u == "" {
		return "", newParseError(MissingURLValue)
	}
	return u, nil
}
