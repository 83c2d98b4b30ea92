package league

import (
	"slices"
	"strconv"
)

var identityColumns = []string{"submitter", "song_id", "song_name", "artist_name", "round_number", "round"}

const submitterCommentColumn = "submitter_comment"

type ScoresRow struct {
	Identity `yaml:",inline"`
	Scores   map[string]int `yaml:"scores"`
}

type CommentsRow struct {
	Identity         `yaml:",inline"`
	SubmitterComment string            `yaml:"submitter_comment"`
	Comments         map[string]string `yaml:"comments"`
}

// ScoresTable has one row per kept submission and one column per voter seen
// anywhere in the corpus. Every row carries a score for every voter.
type ScoresTable struct {
	Voters []string    `yaml:"voters"`
	Rows   []ScoresRow `yaml:"rows"`
}

// CommentsTable mirrors ScoresTable with comment text in the voter columns.
// Every row carries a comment for every voter, empty when none was left.
type CommentsTable struct {
	Voters []string      `yaml:"voters"`
	Rows   []CommentsRow `yaml:"rows"`
}

type Corpus struct {
	Scores       ScoresTable   `yaml:"scores"`
	Comments     CommentsTable `yaml:"comments"`
	Participants []string      `yaml:"participants"`
}

// SongIDs returns the song id of every scores row in row order. Duplicates are kept.
func (c *Corpus) SongIDs() []string {
	ids := make([]string, 0, len(c.Scores.Rows))
	for _, row := range c.Scores.Rows {
		ids = append(ids, row.SongID)
	}
	return ids
}

func (t ScoresTable) Header() []string {
	return append(slices.Clone(identityColumns), t.Voters...)
}

func (t ScoresTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := row.Identity.cells()
		for _, voter := range t.Voters {
			record = append(record, strconv.Itoa(row.Scores[voter]))
		}
		records = append(records, record)
	}
	return records
}

func (t CommentsTable) Header() []string {
	header := append(slices.Clone(identityColumns), submitterCommentColumn)
	return append(header, t.Voters...)
}

func (t CommentsTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := append(row.Identity.cells(), row.SubmitterComment)
		for _, voter := range t.Voters {
			record = append(record, row.Comments[voter])
		}
		records = append(records, record)
	}
	return records
}

func (i Identity) cells() []string {
	return []string{i.Submitter, i.SongID, i.SongName, i.ArtistName, strconv.Itoa(i.RoundNumber), i.RoundName}
}

// Builder accumulates submissions across rounds. It is the only owner of the
// growing row lists and participant set.
type Builder struct {
	scores       []ScoresRow
	comments     []CommentsRow
	participants map[string]struct{}
}

func NewBuilder() *Builder {
	return &Builder{participants: map[string]struct{}{}}
}

// Add records a submission. Submissions from members who left the league are ignored.
func (b *Builder) Add(s Submission) {
	if s.Submitter == LeftTheLeague {
		return
	}
	b.participants[s.Submitter] = struct{}{}
	b.scores = append(b.scores, s.ScoresRecord())
	b.comments = append(b.comments, s.CommentsRecord())
}

// Corpus materializes the accumulated rows into dense tables. Missing scores
// become 0 and missing comments become "".
func (b *Builder) Corpus() *Corpus {
	scoreVoters := map[string]struct{}{}
	for _, row := range b.scores {
		for voter := range row.Scores {
			scoreVoters[voter] = struct{}{}
		}
	}
	commentVoters := map[string]struct{}{}
	for _, row := range b.comments {
		for voter := range row.Comments {
			commentVoters[voter] = struct{}{}
		}
	}

	scores := ScoresTable{Voters: sortedKeys(scoreVoters), Rows: make([]ScoresRow, len(b.scores))}
	for i, row := range b.scores {
		dense := make(map[string]int, len(scores.Voters))
		for _, voter := range scores.Voters {
			dense[voter] = row.Scores[voter]
		}
		scores.Rows[i] = ScoresRow{Identity: row.Identity, Scores: dense}
	}

	comments := CommentsTable{Voters: sortedKeys(commentVoters), Rows: make([]CommentsRow, len(b.comments))}
	for i, row := range b.comments {
		dense := make(map[string]string, len(comments.Voters))
		for _, voter := range comments.Voters {
			dense[voter] = row.Comments[voter]
		}
		comments.Rows[i] = CommentsRow{Identity: row.Identity, SubmitterComment: row.SubmitterComment, Comments: dense}
	}

	return &Corpus{
		Scores:       scores,
		Comments:     comments,
		Participants: sortedKeys(b.participants),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
