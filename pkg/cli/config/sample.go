package config

import (
	"context"
	"log/slog"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/service/sample"
	"github.com/secmon-lab/hara/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Sample holds the location of the sample document served as the recent PDF
type Sample struct {
	location    string
	credentials string
}

// Flags returns CLI flags for the sample document
func (x *Sample) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "recent-pdf",
			Usage:       "Sample PDF served at /api/recent-pdf: local path or gs://bucket/object",
			Category:    "Sample",
			Sources:     cli.EnvVars("HARA_RECENT_PDF"),
			Destination: &x.location,
		},
		&cli.StringFlag{
			Name:        "gcs-credentials",
			Usage:       "Service account key file for Cloud Storage (default: application default credentials)",
			Category:    "Sample",
			Sources:     cli.EnvVars("HARA_GCS_CREDENTIALS"),
			Destination: &x.credentials,
		},
	}
}

// LogValue makes Sample printable by slog
func (x Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("location", x.location),
		slog.String("gcs_credentials", x.credentials),
	)
}

// Configure creates the sample source. It returns a nil source when no location is
// configured. The returned function releases the Cloud Storage client.
func (x *Sample) Configure(ctx context.Context) (sample.Source, func(), error) {
	noop := func() {}

	switch {
	case x.location == "":
		return nil, noop, nil

	case strings.HasPrefix(x.location, "gs://"):
		bucket, object, err := sample.ParseGCSURL(x.location)
		if err != nil {
			return nil, noop, goerr.Wrap(ErrInvalidConfig, err.Error())
		}

		var opts []option.ClientOption
		if x.credentials != "" {
			opts = append(opts, option.WithCredentialsFile(x.credentials))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, noop, goerr.Wrap(err, "failed to create Cloud Storage client")
		}
		closer := func() {
			if err := client.Close(); err != nil {
				logging.Default().Warn("failed to close Cloud Storage client", "error", err.Error())
			}
		}
		return sample.NewGCS(client, bucket, object), closer, nil

	default:
		return sample.NewFile(x.location), noop, nil
	}
}
