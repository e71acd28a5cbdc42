package ana

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
)

const (
	errorTablePath = ".//ErrorTable"
	errorTextTag   = "Error"
	maxSnippetLen  = 512
)

// Validate classifies a completed response. A 404 is ErrNotFound whatever the
// body holds; a body carrying ErrorTable/Error with text is a *ServiceError.
// A nil result means the body can be handed to Extract unchanged.
func Validate(statusCode int, body []byte) error {
	_, err := validateDocument(statusCode, body)
	return err
}

// validateDocument runs Validate and returns the parsed document so the
// extractor does not parse the body a second time.
func validateDocument(statusCode int, body []byte) (*etree.Document, error) {
	if statusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if statusCode >= http.StatusBadRequest {
		return nil, &StatusError{StatusCode: statusCode, Snippet: responseSnippet(body)}
	}

	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}
	if msg, ok := errorTableMessage(doc); ok {
		return nil, &ServiceError{Message: msg}
	}
	return doc, nil
}

func parseDocument(body []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedResponse)
	}
	return doc, nil
}

// errorTableMessage returns the first non-empty ErrorTable/Error text.
func errorTableMessage(doc *etree.Document) (string, bool) {
	for _, table := range doc.FindElements(errorTablePath) {
		errEl := table.SelectElement(errorTextTag)
		if errEl == nil {
			continue
		}
		if msg := strings.TrimSpace(errEl.Text()); msg != "" {
			return msg, true
		}
	}
	return "", false
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetLen {
		cut := maxSnippetLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
