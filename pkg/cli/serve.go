package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/hara/pkg/cli/config"
	httpctrl "github.com/secmon-lab/hara/pkg/controller/http"
	"github.com/secmon-lab/hara/pkg/usecase"
	"github.com/secmon-lab/hara/pkg/utils/logging"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var generateTimeout time.Duration
	var maxUploadMB int64
	var haraCfg config.HARA
	var llmCfg config.LLM
	var pdfCfg config.PDF
	var sampleCfg config.Sample
	var videoCfg config.Video
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":3000",
			Sources:     cli.EnvVars("HARA_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "generate-timeout",
			Usage:       "Time limit of a single report generation request",
			Value:       2 * time.Minute,
			Sources:     cli.EnvVars("HARA_GENERATE_TIMEOUT"),
			Destination: &generateTimeout,
		},
		&cli.Int64Flag{
			Name:        "max-upload-mb",
			Usage:       "Maximum size of an uploaded PDF in megabytes",
			Value:       32,
			Sources:     cli.EnvVars("HARA_MAX_UPLOAD_MB"),
			Destination: &maxUploadMB,
		},
	}

	flags = append(flags, haraCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, pdfCfg.Flags()...)
	flags = append(flags, sampleCfg.Flags()...)
	flags = append(flags, videoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Configuration",
				"hara", haraCfg,
				"llm", llmCfg,
				"pdf", pdfCfg,
				"sample", sampleCfg,
				"video", videoCfg,
				"sentry", sentryCfg,
			)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			haraConfig, err := haraCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load HARA configuration")
			}

			llmSvc, err := llmCfg.Configure(haraConfig)
			if err != nil {
				return err
			}
			if llmCfg.Enabled() {
				logging.Default().Info("LLM features enabled")
			} else {
				logging.Default().Info("LLM credentials not configured, reports use heuristics only")
			}

			sampleSrc, closeSample, err := sampleCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sample source")
			}
			defer closeSample()

			uc, err := usecase.New(
				usecase.WithHARAConfig(haraConfig),
				usecase.WithPDFService(pdfCfg.Configure()),
				usecase.WithLLMService(llmSvc),
				usecase.WithVideoService(videoCfg.Configure()),
				usecase.WithSampleSource(sampleSrc),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			httpHandler, err := httpctrl.New(uc.HARA,
				httpctrl.WithVideo(uc.Video),
				httpctrl.WithSample(uc.Sample),
				httpctrl.WithGenerateTimeout(generateTimeout),
				httpctrl.WithMaxUploadSize(maxUploadMB<<20),
				httpctrl.WithSentry(sentryCfg.Enabled()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
