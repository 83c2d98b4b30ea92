package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSongIDs(t *testing.T) {
	table := "submitter,song_id,song_name,artist_name,round_number,round,Alice\n" +
		"Alice,abc123,Here Comes the Rain Again,Eurythmics,7,Songs About Rain,0\n" +
		"Bob,def456,Purple Rain,Prince,7,Songs About Rain,5\n" +
		"Alice,abc123,Here Comes the Rain Again,Eurythmics,8,Repeats,0\n"
	ids, err := ReadSongIDs(strings.NewReader(table))
	require.NoError(t, err)
	require.Equal(t, []string{"abc123", "def456", "abc123"}, ids)
}

func TestReadSongIDsErrors(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"empty", ""},
		{"no song id column", "submitter,song_name\nAlice,Purple Rain\n"},
		{"ragged row", "submitter,song_id\nAlice,abc123,extra\n"},
		{"blank song id", "submitter,song_id\nAlice, \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSongIDs(strings.NewReader(tt.table))
			require.Error(t, err)
		})
	}
}
