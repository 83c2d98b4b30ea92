package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Track struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	DurationMS int           `json:"duration_ms"`
	Explicit   bool          `json:"explicit"`
	Popularity int           `json:"popularity"`
	Album      Album         `json:"album"`
	Artists    []TrackArtist `json:"artists"`
}

type Album struct {
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

type TrackArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Artist struct {
	ID         string   `json:"id"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
}

type tracksResponse struct {
	Tracks []*Track `json:"tracks"`
}

type artistsResponse struct {
	Artists []*Artist `json:"artists"`
}

// Tracks fetches track metadata in request order. Every id must resolve to a track.
func (c *Client) Tracks(ctx context.Context, ids []string) ([]Track, error) {
	tracks := make([]Track, 0, len(ids))
	for chunk := range slices.Chunk(ids, maxTracksPerRequest) {
		req, err := c.appRequest(ctx)
		if err != nil {
			return nil, err
		}
		var body tracksResponse
		res, err := req.
			SetQueryParam("ids", strings.Join(chunk, ",")).
			SetResult(&body).
			Get("/v1/tracks")
		if err != nil {
			return nil, err
		}
		if res.IsError() {
			return nil, statusError(res)
		}
		if len(body.Tracks) != len(chunk) {
			return nil, fmt.Errorf("catalog: expected %d tracks, but received %d", len(chunk), len(body.Tracks))
		}
		for i, t := range body.Tracks {
			if t == nil {
				return nil, fmt.Errorf("catalog: unknown track %q", chunk[i])
			}
			tracks = append(tracks, *t)
		}
	}
	return tracks, nil
}

// Artists fetches artist metadata keyed by artist id. Previously fetched
// artists are served from the client's cache.
func (c *Client) Artists(ctx context.Context, ids []string) (map[string]Artist, error) {
	artists := map[string]Artist{}
	var uncached []string
	for _, id := range ids {
		if _, seen := artists[id]; seen || slices.Contains(uncached, id) {
			continue
		}
		if a, ok := c.artists.Get(id); ok {
			artists[id] = a
			continue
		}
		uncached = append(uncached, id)
	}
	slog.DebugContext(ctx, "fetching artists", "cached", len(artists), "uncached", len(uncached))

	for chunk := range slices.Chunk(uncached, maxArtistsPerRequest) {
		req, err := c.appRequest(ctx)
		if err != nil {
			return nil, err
		}
		var body artistsResponse
		res, err := req.
			SetQueryParam("ids", strings.Join(chunk, ",")).
			SetResult(&body).
			Get("/v1/artists")
		if err != nil {
			return nil, err
		}
		if res.IsError() {
			return nil, statusError(res)
		}
		for _, a := range body.Artists {
			if a == nil {
				continue
			}
			c.artists.Add(a.ID, *a)
			artists[a.ID] = *a
		}
	}
	return artists, nil
}

// EnrichedTrack combines a track with the metadata of all its artists.
type EnrichedTrack struct {
	SongID          string    `yaml:"song_id"`
	SongName        string    `yaml:"song_name"`
	AlbumName       string    `yaml:"album_name"`
	ReleaseDate     time.Time `yaml:"release_date"`
	DurationSeconds float64   `yaml:"duration_s"`
	Explicit        bool      `yaml:"explicit"`
	Popularity      int       `yaml:"popularity"`
	ArtistNames     []string  `yaml:"artist_names"`
	ArtistIDs       []string  `yaml:"artist_ids"`

	// Union of all artists' genres.
	Genres []string `yaml:"genres"`

	// Highest follower count and popularity among the artists.
	ArtistFollowers  int `yaml:"artist_followers"`
	ArtistPopularity int `yaml:"artist_popularity"`
}

// Enrich looks up every song id, in order. Duplicate ids produce duplicate rows.
func (c *Client) Enrich(ctx context.Context, songIDs []string) ([]EnrichedTrack, error) {
	tracks, err := c.Tracks(ctx, songIDs)
	if err != nil {
		return nil, err
	}

	var artistIDs []string
	for _, t := range tracks {
		for _, a := range t.Artists {
			artistIDs = append(artistIDs, a.ID)
		}
	}
	artists, err := c.Artists(ctx, artistIDs)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedTrack, 0, len(tracks))
	for i, t := range tracks {
		release, err := ParseReleaseDate(t.Album.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("catalog: track %s: %w", t.ID, err)
		}
		e := EnrichedTrack{
			SongID:          songIDs[i],
			SongName:        t.Name,
			AlbumName:       t.Album.Name,
			ReleaseDate:     release,
			DurationSeconds: float64(t.DurationMS) / 1000,
			Explicit:        t.Explicit,
			Popularity:      t.Popularity,
			Genres:          []string{},
		}
		for _, ta := range t.Artists {
			a, ok := artists[ta.ID]
			if !ok {
				return nil, fmt.Errorf("catalog: track %s: unknown artist %q", t.ID, ta.ID)
			}
			e.ArtistNames = append(e.ArtistNames, ta.Name)
			e.ArtistIDs = append(e.ArtistIDs, ta.ID)
			for _, g := range a.Genres {
				if !slices.Contains(e.Genres, g) {
					e.Genres = append(e.Genres, g)
				}
			}
			e.ArtistFollowers = max(e.ArtistFollowers, a.Followers.Total)
			e.ArtistPopularity = max(e.ArtistPopularity, a.Popularity)
		}
		slices.Sort(e.Genres)
		enriched = append(enriched, e)
	}
	return enriched, nil
}

// ParseReleaseDate accepts the year, year-month and full date precisions the
// catalog reports. Missing month or day default to 1.
func ParseReleaseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) == 0 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid release date %q", s)
	}
	values := []int{0, 1, 1}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid release date %q: %w", s, err)
		}
		values[i] = n
	}
	return time.Date(values[0], time.Month(values[1]), values[2], 0, 0, 0, 0, time.UTC), nil
}
