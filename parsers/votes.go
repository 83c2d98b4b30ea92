package parsers

import (
	"fmt"
	"strings"

	"github.com/Nydauron/musicleague2csv/league"
	"github.com/PuerkitoBio/goquery"
)

// StatedTotal reads the point total the page displays for a submission card.
// The number is the last node of the total heading; earlier nodes hold icons.
func StatedTotal(card *goquery.Selection) (int, error) {
	block, err := first(card, "total", totalBlockSelector)
	if err != nil {
		return 0, err
	}
	heading, err := first(block, "total", totalSelector)
	if err != nil {
		return 0, err
	}
	last := heading.Contents().Last()
	if last.Length() == 0 {
		return 0, &StructureError{Field: "total", Reason: "total heading is empty"}
	}
	return parseInt("total", last.Text())
}

// ExtractVotes reads every voter row in the card footer. Points from several
// rows of the same voter are summed while comments overwrite. When the summed
// points disagree with statedTotal the votes are reconciled (see
// league.Votes.Reconcile) and the returned flag is true.
func ExtractVotes(card *goquery.Selection, statedTotal int) (league.Votes, league.Comments, bool, error) {
	footer, err := first(card, "footer", footerSelector)
	if err != nil {
		return nil, nil, false, err
	}

	votes := league.Votes{}
	comments := league.Comments{}
	var rowErr error
	footer.Find(voteRowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		voter, points, comment, err := parseVoteRow(row)
		if err != nil {
			rowErr = fmt.Errorf("vote row %d: %w", i, err)
			return false
		}
		votes.Add(voter, points)
		comments[voter] = comment
		return true
	})
	if rowErr != nil {
		return nil, nil, false, rowErr
	}

	reconciled := votes.Reconcile(statedTotal)
	return votes, comments, reconciled, nil
}

func parseVoteRow(row *goquery.Selection) (string, int, string, error) {
	name, err := first(row, "voter name", voterNameSelector)
	if err != nil {
		return "", 0, "", err
	}
	voter := strings.TrimSpace(name.Text())

	points := 0
	if score := row.Find(voteScoreSelector).First(); score.Length() > 0 {
		points, err = parseInt("score", score.Text())
		if err != nil {
			return "", 0, "", err
		}
	}

	comment := ""
	if c := row.Find(voteCommentSelector).First(); c.Length() > 0 {
		comment = c.Text()
	}
	return voter, points, comment, nil
}
