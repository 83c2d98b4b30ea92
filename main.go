package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Nydauron/musicleague2csv/catalog"
	"github.com/Nydauron/musicleague2csv/config"
	"github.com/Nydauron/musicleague2csv/league"
	"github.com/Nydauron/musicleague2csv/parsers"
	"github.com/Nydauron/musicleague2csv/writers"
	"github.com/urfave/cli/v2"
)

const (
	inputFlag       = "input"
	outputFlag      = "output"
	formatFlag      = "format"
	scoresFlag      = "scores"
	secretsFlag     = "secrets"
	playlistFlag    = "playlist"
	nameFlag        = "name"
	descriptionFlag = "description"
	verboseFlag     = "verbose"
	stdoutCLIName   = "-"
)

// Exit codes
const (
	exitInput  = 2
	exitEncode = 3
	exitParse  = 4
	exitRemote = 5
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func buildCorpus(inputDir string) (*league.Corpus, error) {
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return nil, cli.Exit(fmt.Sprintf("provided input is not a directory: %v", inputDir), exitInput)
	}
	corpus, err := parsers.BuildCorpus(inputDir)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("Failed to parse league pages: %v", err), exitParse)
	}
	slog.Info("parsed league", "submissions", len(corpus.Scores.Rows), "voters", len(corpus.Scores.Voters), "participants", len(corpus.Participants))
	return corpus, nil
}

func scrapeHandle(inputDir string, outputDir string, format writers.Format) error {
	corpus, err := buildCorpus(inputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	outputs := []struct {
		name  string
		table writers.Table
		value any
	}{
		{"scores", corpus.Scores, corpus.Scores},
		{"comments", corpus.Comments, corpus.Comments},
		{"participants", writers.List{Column: "name", Values: corpus.Participants}, corpus.Participants},
	}
	for _, o := range outputs {
		path := filepath.Join(outputDir, o.name+"."+string(format))
		outputWriter := writers.NewLazyFile(path)
		var err error
		switch format {
		case writers.FormatYAML:
			err = writers.WriteYAML(outputWriter, o.value)
		default:
			err = writers.WriteCSV(outputWriter, o.table)
		}
		if err := errors.Join(err, outputWriter.Close()); err != nil {
			return cli.Exit(fmt.Sprintf("Writing %s failed: %v", path, err), exitEncode)
		}
		slog.Debug("wrote table", "path", path)
	}
	return nil
}

func songIDs(inputDir string, scoresPath string) ([]string, error) {
	if scoresPath != "" {
		f, err := os.Open(scoresPath)
		if err != nil {
			return nil, cli.Exit(fmt.Sprintf("provided scores table could not be opened: %v", err), exitInput)
		}
		defer f.Close()
		ids, err := parsers.ReadSongIDs(f)
		if err != nil {
			return nil, cli.Exit(fmt.Sprintf("Failed to read scores table: %v", err), exitParse)
		}
		return ids, nil
	}
	corpus, err := buildCorpus(inputDir)
	if err != nil {
		return nil, err
	}
	return corpus.SongIDs(), nil
}

func newCatalogClient(secretsPath string) (*catalog.Client, error) {
	creds, err := config.Load(secretsPath)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitInput)
	}
	if err := creds.Validate(); err != nil {
		return nil, cli.Exit(err.Error(), exitInput)
	}
	return catalog.NewClient(catalog.Options{
		AccountsURL:  creds.AccountsURL,
		APIURL:       creds.APIURL,
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		UserToken:    creds.UserToken,
	})
}

func main() {
	var inputLocation string
	var outputLocation string
	var formatName string
	var scoresLocation string
	var secretsLocation string
	var playlists cli.StringSlice
	var playlistName string
	var playlistDescription string
	var verbose bool

	secretsCLIFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        secretsFlag,
			Usage:       "YAML file holding the catalog API client credentials",
			Value:       config.DefaultSecretsFile,
			Destination: &secretsLocation,
		}
	}

	app := &cli.App{
		Name:    "musicleague2csv",
		Usage:   "A tool to turn saved Music League round pages into score and comment tables",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        verboseFlag,
				Aliases:     []string{"v"},
				Usage:       "Log every parsed round and vote correction",
				Destination: &verbose,
			},
		},
		Before: func(cCtx *cli.Context) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "scrape",
				Usage: "Build the scores, comments and participants tables from a directory of round pages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        inputFlag,
						Aliases:     []string{"i"},
						Usage:       "The directory containing the saved .htm/.html round pages",
						Destination: &inputLocation,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        outputFlag,
						Aliases:     []string{"o"},
						Usage:       "The directory to write the tables to",
						Destination: &outputLocation,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        formatFlag,
						Usage:       "Output format, \"csv\" or \"yaml\"",
						Value:       string(writers.FormatCSV),
						Destination: &formatName,
					},
				},
				Action: func(cCtx *cli.Context) error {
					format, err := writers.ParseFormat(formatName)
					if err != nil {
						return err
					}
					return scrapeHandle(inputLocation, outputLocation, format)
				},
			},
			{
				Name:  "enrich",
				Usage: "Look up album, artist and genre data for every submitted song",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        inputFlag,
						Aliases:     []string{"i"},
						Usage:       "The directory containing the saved .htm/.html round pages",
						Destination: &inputLocation,
					},
					&cli.StringFlag{
						Name:        scoresFlag,
						Usage:       "A scores CSV written by the scrape command, used instead of --input",
						Destination: &scoresLocation,
					},
					&cli.StringFlag{
						Name:        outputFlag,
						Aliases:     []string{"o"},
						Usage:       "The location to write the YAML result. Can be a file path or \"-\" (for stdout).",
						Destination: &outputLocation,
						Required:    true,
					},
					secretsCLIFlag(),
				},
				Action: func(cCtx *cli.Context) error {
					if (inputLocation == "") == (scoresLocation == "") {
						return fmt.Errorf("exactly one of --%s or --%s must be set", inputFlag, scoresFlag)
					}
					ids, err := songIDs(inputLocation, scoresLocation)
					if err != nil {
						return err
					}
					client, err := newCatalogClient(secretsLocation)
					if err != nil {
						return err
					}
					tracks, err := client.Enrich(cCtx.Context, ids)
					if err != nil {
						return cli.Exit(fmt.Sprintf("Catalog lookup failed: %v", err), exitRemote)
					}

					var outputWriter io.WriteCloser = writers.NopCloser(os.Stdout)
					if outputLocation != stdoutCLIName {
						outputWriter = writers.NewLazyFile(outputLocation)
					}
					if err := errors.Join(writers.WriteYAML(outputWriter, tracks), outputWriter.Close()); err != nil {
						return cli.Exit(err.Error(), exitEncode)
					}
					return nil
				},
			},
			{
				Name:  "playlist",
				Usage: "Copy every track of several playlists into one new playlist",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:        playlistFlag,
						Aliases:     []string{"p"},
						Usage:       "A source playlist id. Repeat for each playlist.",
						Destination: &playlists,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        nameFlag,
						Usage:       "Name of the new playlist",
						Value:       "mega playlist",
						Destination: &playlistName,
					},
					&cli.StringFlag{
						Name:        descriptionFlag,
						Usage:       "Description of the new playlist",
						Destination: &playlistDescription,
					},
					secretsCLIFlag(),
				},
				Action: func(cCtx *cli.Context) error {
					client, err := newCatalogClient(secretsLocation)
					if err != nil {
						return err
					}
					id, err := client.BuildMegaPlaylist(cCtx.Context, playlists.Value(), playlistName, playlistDescription)
					if err != nil {
						return cli.Exit(fmt.Sprintf("Building playlist failed: %v", err), exitRemote)
					}
					fmt.Fprintln(cCtx.App.Writer, id)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
