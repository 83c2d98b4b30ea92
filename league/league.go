package league

// Submitter name the league shows for members who quit. Their submissions are dropped.
const LeftTheLeague = "[Left the league]"

type Round struct {
	Number int    `yaml:"number"`
	Name   string `yaml:"name"`
}

// Votes maps a voter name to the points they gave one submission.
type Votes map[string]int

// Comments maps a voter name to the comment they left on one submission.
type Comments map[string]string

// Add accumulates points for a voter. A voter appearing in more than one row
// of the same submission has their points summed.
func (v Votes) Add(voter string, points int) {
	v[voter] += points
}

func (v Votes) Total() int {
	total := 0
	for _, points := range v {
		total += points
	}
	return total
}

// Reconcile checks the accumulated points against the total shown on the page.
// A mismatch means the submitter did not vote that round and only keeps the
// downvotes they received, so every positive score is zeroed. Reports whether
// the correction was applied.
func (v Votes) Reconcile(statedTotal int) bool {
	if v.Total() == statedTotal {
		return false
	}
	for voter, points := range v {
		if points > 0 {
			v[voter] = 0
		}
	}
	return true
}

type Submission struct {
	Submitter        string
	SongID           string
	SongName         string
	ArtistName       string
	Round            Round
	StatedTotal      int
	SubmitterComment string
	Votes            Votes
	Comments         Comments

	// Set when the observed vote total disagreed with StatedTotal.
	Reconciled bool
}

// Identity holds the columns shared by the scores and comments tables.
type Identity struct {
	Submitter   string `yaml:"submitter"`
	SongID      string `yaml:"song_id"`
	SongName    string `yaml:"song_name"`
	ArtistName  string `yaml:"artist_name"`
	RoundNumber int    `yaml:"round_number"`
	RoundName   string `yaml:"round"`
}

func (s Submission) Identity() Identity {
	return Identity{
		Submitter:   s.Submitter,
		SongID:      s.SongID,
		SongName:    s.SongName,
		ArtistName:  s.ArtistName,
		RoundNumber: s.Round.Number,
		RoundName:   s.Round.Name,
	}
}

// ScoresRecord returns the scores row for this submission. Only voters seen on
// this submission are present; missing voters are filled in by the table.
func (s Submission) ScoresRecord() ScoresRow {
	scores := make(map[string]int, len(s.Votes))
	for voter, points := range s.Votes {
		scores[voter] = points
	}
	return ScoresRow{Identity: s.Identity(), Scores: scores}
}

func (s Submission) CommentsRecord() CommentsRow {
	comments := make(map[string]string, len(s.Comments))
	for voter, comment := range s.Comments {
		comments[voter] = comment
	}
	return CommentsRow{
		Identity:         s.Identity(),
		SubmitterComment: s.SubmitterComment,
		Comments:         comments,
	}
}
