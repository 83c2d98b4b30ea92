package parsers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the league results page template. Class attributes that the
// template writes as a fixed multi-class string are matched exactly.
const (
	roundCardSelector      = "div.card-body"
	roundCardIndex         = 5
	roundNumberSelector    = ".text-body-tertiary"
	roundNameSelector      = "h5.card-title"
	roundNumberPrefix      = "ROUND "
	submissionCardSelector = `[class="card mb-4"]`

	submitterBlockSelector   = ".mt-3"
	submitterNameSelector    = "h6.text-truncate"
	songNameSelector         = "h6.card-title"
	artistNameSelector       = "p"
	submitterCommentSelector = "span.text-break"
	totalBlockSelector       = `[class="col-auto text-end"]`
	totalSelector            = "h3"
	songIDPrefix             = "spotify:track:"

	footerSelector       = ".card-footer"
	voteRowSelector      = ".row"
	voterNameSelector    = ".text-truncate"
	voteScoreSelector    = ".m-0"
	voteCommentSelector  = `[class="text-break ws-pre-wrap"]`
	footerDescendantsSel = ".card-footer *"
)

// StructureError reports a page that does not match the expected template:
// a required element is missing or holds an unexpected value.
type StructureError struct {
	Field  string
	Reason string
	Err    error
}

func (e *StructureError) Error() string {
	msg := fmt.Sprintf("malformed %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

func missing(field, selector string) *StructureError {
	return &StructureError{Field: field, Reason: fmt.Sprintf("no element matching %q", selector)}
}

// first returns the first match of selector under sel or a StructureError naming field.
func first(sel *goquery.Selection, field, selector string) (*goquery.Selection, error) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, missing(field, selector)
	}
	return found, nil
}

func parseInt(field, text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &StructureError{Field: field, Reason: fmt.Sprintf("%q is not an integer", text), Err: err}
	}
	return n, nil
}
