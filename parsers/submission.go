package parsers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Nydauron/musicleague2csv/league"
	"github.com/PuerkitoBio/goquery"
)

// AssembleSubmission reads one submission card. It returns nil without error
// for cards submitted by members who left the league.
func AssembleSubmission(card *goquery.Selection, round league.Round) (*league.Submission, error) {
	submitter, err := submitterName(card)
	if err != nil {
		return nil, err
	}
	if submitter == league.LeftTheLeague {
		slog.Debug("dropping submission from departed member", "round", round.Number)
		return nil, nil
	}

	songID, err := songID(card)
	if err != nil {
		return nil, err
	}
	songName, err := first(card, "song name", songNameSelector)
	if err != nil {
		return nil, err
	}
	artistName, err := first(card, "artist name", artistNameSelector)
	if err != nil {
		return nil, err
	}
	comment, err := submitterComment(card)
	if err != nil {
		return nil, err
	}

	total, err := StatedTotal(card)
	if err != nil {
		return nil, err
	}
	votes, comments, reconciled, err := ExtractVotes(card, total)
	if err != nil {
		return nil, err
	}
	if reconciled {
		slog.Debug("vote total mismatch, submitter did not vote",
			"round", round.Number, "submitter", submitter, "song_id", songID, "stated_total", total)
	}

	return &league.Submission{
		Submitter:        submitter,
		SongID:           songID,
		SongName:         strings.TrimSpace(songName.Text()),
		ArtistName:       strings.TrimSpace(artistName.Text()),
		Round:            round,
		StatedTotal:      total,
		SubmitterComment: comment,
		Votes:            votes,
		Comments:         comments,
		Reconciled:       reconciled,
	}, nil
}

func submitterName(card *goquery.Selection) (string, error) {
	block, err := first(card, "submitter", submitterBlockSelector)
	if err != nil {
		return "", err
	}
	name, err := first(block, "submitter", submitterNameSelector)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name.Text()), nil
}

func songID(card *goquery.Selection) (string, error) {
	id, ok := card.Attr("id")
	if !ok {
		return "", &StructureError{Field: "song id", Reason: "card has no id attribute"}
	}
	trimmed, found := strings.CutPrefix(id, songIDPrefix)
	if !found || trimmed == "" {
		return "", &StructureError{Field: "song id", Reason: fmt.Sprintf("%q is not a %q uri", id, songIDPrefix)}
	}
	return trimmed, nil
}

// The submitter's own comment sits above the footer. The element is present
// even when the comment is blank.
func submitterComment(card *goquery.Selection) (string, error) {
	span := card.Find(submitterCommentSelector).Not(footerDescendantsSel).First()
	if span.Length() == 0 {
		return "", missing("submitter comment", submitterCommentSelector)
	}
	return span.Text(), nil
}
