package config

import (
	"log/slog"

	"github.com/secmon-lab/hara/pkg/service/video"
	"github.com/urfave/cli/v3"
)

// Video holds configuration of the video search demo
type Video struct {
	serpAPIKey string
	language   string
}

// Flags returns CLI flags for video search
func (x *Video) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "serpapi-api-key",
			Usage:       "SerpAPI API key for YouTube search",
			Category:    "Video",
			Sources:     cli.EnvVars("HARA_SERPAPI_API_KEY", "SERPAPI_API_KEY"),
			Destination: &x.serpAPIKey,
		},
		&cli.StringFlag{
			Name:        "transcript-lang",
			Usage:       "Caption language of video transcripts",
			Value:       "en",
			Category:    "Video",
			Sources:     cli.EnvVars("HARA_TRANSCRIPT_LANG"),
			Destination: &x.language,
		},
	}
}

// LogValue makes Video printable by slog without the API key
func (x Video) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("serpapi_api_key_set", x.serpAPIKey != ""),
		slog.String("transcript_lang", x.language),
	)
}

// Configure creates the video service. Transcripts work without a key; Search
// reports the missing key.
func (x *Video) Configure() video.Service {
	var opts []video.Option
	if x.language != "" {
		opts = append(opts, video.WithLanguage(x.language))
	}
	return video.New(x.serpAPIKey, opts...)
}
