package parsers

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/Nydauron/musicleague2csv/league"
	"github.com/stretchr/testify/require"
)

func leagueFS() fstest.MapFS {
	return fstest.MapFS{
		"round_07.html":        {Data: round07},
		"round_08.htm":         {Data: round08},
		"notes.txt":            {Data: []byte("not a round")},
		"round_07.HTML":        {Data: []byte("ignored, extension is case sensitive")},
		"archive/round_01.htm": {Data: []byte("nested files are not read")},
	}
}

func TestParseRoundFile(t *testing.T) {
	round, submissions, err := ParseRoundFile(bytes.NewReader(round07))
	require.NoError(t, err)
	require.Equal(t, league.Round{Number: 7, Name: "Songs About Rain"}, round)
	require.Len(t, submissions, 3)
	for _, s := range submissions {
		require.NotEqual(t, league.LeftTheLeague, s.Submitter)
	}
}

func TestBuildCorpus(t *testing.T) {
	corpus, err := BuildCorpusFS(leagueFS())
	require.NoError(t, err)

	require.Equal(t, []string{"Alice", "Bob", "Carol"}, corpus.Participants)
	require.Equal(t, []string{"abc123", "def456", "ghi789", "jkl012"}, corpus.SongIDs())

	require.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", league.LeftTheLeague}, corpus.Scores.Voters)
	require.Equal(t, corpus.Scores.Voters, corpus.Comments.Voters)
	require.Len(t, corpus.Scores.Rows, 4)
	require.Len(t, corpus.Comments.Rows, 4)

	first := corpus.Scores.Rows[0]
	require.Equal(t, league.Identity{
		Submitter:   "Alice",
		SongID:      "abc123",
		SongName:    "Here Comes the Rain Again",
		ArtistName:  "Eurythmics",
		RoundNumber: 7,
		RoundName:   "Songs About Rain",
	}, first.Identity)
	require.Equal(t, map[string]int{"Alice": 0, "Bob": 3, "Carol": 2, "Dave": 0, league.LeftTheLeague: 0}, first.Scores)

	require.Equal(t, 5, corpus.Scores.Rows[1].Scores["Alice"])
	require.Equal(t, map[string]int{"Alice": 0, "Bob": -1, "Carol": 0, "Dave": 0, league.LeftTheLeague: 0}, corpus.Scores.Rows[2].Scores)

	covers := corpus.Scores.Rows[3]
	require.Equal(t, 8, covers.RoundNumber)
	require.Equal(t, 2, covers.Scores[league.LeftTheLeague])

	comments := corpus.Comments.Rows[0]
	require.Equal(t, "Love this one", comments.SubmitterComment)
	require.Equal(t, map[string]string{
		"Alice":              "",
		"Bob":                "great pick",
		"Carol":              "",
		"Dave":               "forgot to vote, sorry",
		league.LeftTheLeague: "",
	}, comments.Comments)
	require.Equal(t, "goodbye all", corpus.Comments.Rows[3].Comments[league.LeftTheLeague])
}

func TestBuildCorpusIsRepeatable(t *testing.T) {
	first, err := BuildCorpusFS(leagueFS())
	require.NoError(t, err)
	second, err := BuildCorpusFS(leagueFS())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBuildCorpusEmptyDirectory(t *testing.T) {
	corpus, err := BuildCorpusFS(fstest.MapFS{"readme.md": {Data: []byte("#")}})
	require.NoError(t, err)
	require.Empty(t, corpus.Scores.Rows)
	require.Empty(t, corpus.Comments.Rows)
	require.Empty(t, corpus.Participants)
}

func TestBuildCorpusFailsFast(t *testing.T) {
	fsys := leagueFS()
	fsys["round_09.html"] = &fstest.MapFile{Data: []byte(roundPage(validRoundCard,
		`<div class="card mb-4" id="spotify:track:bad"><div class="mt-3"><h6 class="text-truncate">Bob</h6></div></div>`,
	))}

	corpus, err := BuildCorpusFS(fsys)
	require.Nil(t, corpus)
	require.ErrorContains(t, err, "round_09.html")
	require.ErrorContains(t, err, "spotify:track:bad")
	var structErr *StructureError
	require.ErrorAs(t, err, &structErr)
}

func TestBuildCorpusFromDisk(t *testing.T) {
	corpus, err := BuildCorpus("testdata")
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "Bob", "Carol"}, corpus.Participants)
	require.Len(t, corpus.Scores.Rows, 4)
}
