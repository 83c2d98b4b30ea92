package parsers

import (
	"fmt"
	"strings"

	"github.com/Nydauron/musicleague2csv/league"
	"github.com/PuerkitoBio/goquery"
)

// ParseRound reads the round number and name and returns the submission cards
// in document order.
func ParseRound(doc *goquery.Document) (league.Round, *goquery.Selection, error) {
	round, err := parseRoundDetails(doc.Selection)
	if err != nil {
		return league.Round{}, nil, err
	}
	return round, doc.Find(submissionCardSelector), nil
}

// The round details live in a fixed card: the sixth card body on the page.
func parseRoundDetails(doc *goquery.Selection) (league.Round, error) {
	cards := doc.Find(roundCardSelector)
	if cards.Length() <= roundCardIndex {
		return league.Round{}, &StructureError{
			Field:  "round",
			Reason: fmt.Sprintf("expected at least %d %q elements, found %d", roundCardIndex+1, roundCardSelector, cards.Length()),
		}
	}
	card := cards.Eq(roundCardIndex)

	label, err := first(card, "round number", roundNumberSelector)
	if err != nil {
		return league.Round{}, err
	}
	numberText, found := strings.CutPrefix(strings.TrimSpace(label.Text()), roundNumberPrefix)
	if !found {
		return league.Round{}, &StructureError{Field: "round number", Reason: fmt.Sprintf("%q lacks prefix %q", label.Text(), roundNumberPrefix)}
	}
	number, err := parseInt("round number", numberText)
	if err != nil {
		return league.Round{}, err
	}

	name, err := first(card, "round name", roundNameSelector)
	if err != nil {
		return league.Round{}, err
	}
	return league.Round{Number: number, Name: strings.TrimSpace(name.Text())}, nil
}
