package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

const SongIDColumnName = "song_id"

// ReadSongIDs reads an exported scores table and returns its song_id column
// in row order.
func ReadSongIDs(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scores table is empty")
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	col := slices.Index(header, SongIDColumnName)
	if col == -1 {
		return nil, fmt.Errorf("scores table has no %q column", SongIDColumnName)
	}

	ids := []string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id := strings.TrimSpace(row[col])
		if id == "" {
			line, _ := reader.FieldPos(col)
			return nil, fmt.Errorf("row on line %d has an empty song id", line)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
