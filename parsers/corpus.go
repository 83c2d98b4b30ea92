package parsers

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"

	"github.com/Nydauron/musicleague2csv/league"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var roundFileExtensions = []string{".htm", ".html"}

// ParseRoundFile parses one saved round page. Submissions from members who
// left the league are already removed from the result.
func ParseRoundFile(r io.Reader) (league.Round, []league.Submission, error) {
	root, err := html.Parse(r)
	if err != nil {
		return league.Round{}, nil, err
	}
	doc := goquery.NewDocumentFromNode(root)

	round, cards, err := ParseRound(doc)
	if err != nil {
		return league.Round{}, nil, err
	}

	submissions := []league.Submission{}
	for i := range cards.Length() {
		card := cards.Eq(i)
		s, err := AssembleSubmission(card, round)
		if err != nil {
			id, _ := card.Attr("id")
			return league.Round{}, nil, fmt.Errorf("submission %d (%s): %w", i, id, err)
		}
		if s == nil {
			continue
		}
		submissions = append(submissions, *s)
	}
	return round, submissions, nil
}

// BuildCorpus reads every round page directly inside dir.
func BuildCorpus(dir string) (*league.Corpus, error) {
	return BuildCorpusFS(os.DirFS(dir))
}

// BuildCorpusFS reads every .htm/.html file at the root of fsys in directory
// order and assembles the scores table, comments table and participant list.
// The first malformed page aborts the whole run.
func BuildCorpusFS(fsys fs.FS) (*league.Corpus, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	builder := league.NewBuilder()
	for _, entry := range entries {
		if entry.IsDir() || !isRoundFile(entry.Name()) {
			continue
		}
		contents, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		round, submissions, err := ParseRoundFile(bytes.NewReader(contents))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		slog.Debug("parsed round", "file", entry.Name(), "round", round.Number, "name", round.Name, "submissions", len(submissions))
		for _, s := range submissions {
			builder.Add(s)
		}
	}
	return builder.Corpus(), nil
}

func isRoundFile(name string) bool {
	return slices.Contains(roundFileExtensions, path.Ext(name))
}
