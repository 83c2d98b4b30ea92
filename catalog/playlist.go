package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
)

const TrackURIPrefix = "spotify:track:"

type playlistTracksPage struct {
	Items []struct {
		Track *struct {
			ID string `json:"id"`
		} `json:"track"`
	} `json:"items"`
	Next string `json:"next"`
}

// PlaylistTracks returns the track ids of a playlist in playlist order.
// Entries without a track (removed or local files) are skipped.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	for offset := 0; ; offset += playlistPageSize {
		req, err := c.appRequest(ctx)
		if err != nil {
			return nil, err
		}
		var page playlistTracksPage
		res, err := req.
			SetPathParam("playlist_id", playlistID).
			SetQueryParams(map[string]string{
				"fields": "items(track(id)),next",
				"limit":  strconv.Itoa(playlistPageSize),
				"offset": strconv.Itoa(offset),
			}).
			SetResult(&page).
			Get("/v1/playlists/{playlist_id}/tracks")
		if err != nil {
			return nil, err
		}
		if res.IsError() {
			return nil, statusError(res)
		}
		for _, item := range page.Items {
			if item.Track != nil && item.Track.ID != "" {
				ids = append(ids, item.Track.ID)
			}
		}
		if page.Next == "" {
			return ids, nil
		}
	}
}

type userProfile struct {
	ID string `json:"id"`
}

type playlist struct {
	ID string `json:"id"`
}

// CreatePlaylist creates a private playlist owned by the user token's account.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	req, err := c.userRequest(ctx)
	if err != nil {
		return "", err
	}
	var me userProfile
	res, err := req.SetResult(&me).Get("/v1/me")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", statusError(res)
	}

	req, err = c.userRequest(ctx)
	if err != nil {
		return "", err
	}
	var created playlist
	res, err = req.
		SetPathParam("user_id", me.ID).
		SetBody(map[string]any{
			"name":        name,
			"description": description,
			"public":      false,
		}).
		SetResult(&created).
		Post("/v1/users/{user_id}/playlists")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", statusError(res)
	}
	if created.ID == "" {
		return "", fmt.Errorf("catalog: create playlist response has no id")
	}
	return created.ID, nil
}

// AddTracks appends track uris to a playlist in order.
func (c *Client) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	for chunk := range slices.Chunk(uris, maxPlaylistItemsPerAdd) {
		req, err := c.userRequest(ctx)
		if err != nil {
			return err
		}
		res, err := req.
			SetPathParam("playlist_id", playlistID).
			SetBody(map[string]any{"uris": chunk}).
			Post("/v1/playlists/{playlist_id}/tracks")
		if err != nil {
			return err
		}
		if res.IsError() {
			return statusError(res)
		}
	}
	return nil
}

// BuildMegaPlaylist copies every track of the source playlists, in order,
// into one new playlist and returns its id.
func (c *Client) BuildMegaPlaylist(ctx context.Context, sources []string, name, description string) (string, error) {
	if c.opts.UserToken == "" {
		return "", ErrNoUserToken
	}
	var uris []string
	for _, source := range sources {
		ids, err := c.PlaylistTracks(ctx, source)
		if err != nil {
			return "", fmt.Errorf("playlist %s: %w", source, err)
		}
		for _, id := range ids {
			uris = append(uris, TrackURIPrefix+id)
		}
	}

	playlistID, err := c.CreatePlaylist(ctx, name, description)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "created playlist", "id", playlistID, "tracks", len(uris))
	if err := c.AddTracks(ctx, playlistID, uris); err != nil {
		return playlistID, err
	}
	return playlistID, nil
}
