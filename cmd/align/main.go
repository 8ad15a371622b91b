// Command align scores a candidate document stream against a reference
// corpus using TF-IDF cosine similarity and reports pairs above a
// threshold.
//
// Usage:
//
//	align [flags] REF-TOKENS REF-URLS [CAND-TOKENS CAND-URLS]
//
// Token files carry one base64-encoded document per line, paired line by
// line with the URL files. When the candidate files are omitted the
// candidate stream is consumed from the configured Kafka topic. Qualifying
// pairs are optionally printed as tab-separated lines; the final line on
// stdout is always the hit count.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitextools/docalign/internal/aligner"
	"github.com/bitextools/docalign/internal/dedupe"
	"github.com/bitextools/docalign/internal/ngram"
	"github.com/bitextools/docalign/internal/report"
	"github.com/bitextools/docalign/internal/stream"
	"github.com/bitextools/docalign/pkg/config"
	"github.com/bitextools/docalign/pkg/errors"
	"github.com/bitextools/docalign/pkg/kafka"
	"github.com/bitextools/docalign/pkg/logger"
	"github.com/bitextools/docalign/pkg/metrics"
	"github.com/bitextools/docalign/pkg/postgres"
	"github.com/bitextools/docalign/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	threshold := flag.Float64("threshold", -1, "score threshold (overrides config)")
	workers := flag.Int("workers", -1, "worker count, 0 means NumCPU (overrides config)")
	printPairs := flag.Bool("print", false, "print score/ref-url/cand-url per qualifying pair")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(errors.ExitUsage)
	}
	if *threshold >= 0 {
		cfg.Aligner.Threshold = *threshold
	}
	if *workers >= 0 {
		cfg.Aligner.Workers = *workers
	}
	if *printPairs {
		cfg.Aligner.PrintPairs = true
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	args := flag.Args()
	if len(args) != 2 && len(args) != 4 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] REF-TOKENS REF-URLS [CAND-TOKENS CAND-URLS]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(errors.ExitUsage)
	}
	if len(args) == 2 && !cfg.Kafka.Enabled {
		fmt.Fprintln(os.Stderr, "no candidate files given and kafka is not enabled")
		os.Exit(errors.ExitUsage)
	}

	hits, err := run(cfg, args)
	if err != nil {
		slog.Error("alignment failed", "error", err)
		os.Exit(errors.ExitCode(err))
	}

	fmt.Println(hits)
}

func run(cfg *config.Config, args []string) (uint64, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	extractor := ngram.Extractor{
		N:    cfg.Aligner.NGramSize,
		Stem: cfg.Aligner.Stemming,
	}

	refs, err := stream.NewFileSource(args[0], args[1], extractor, errors.ExitRefPairing)
	if err != nil {
		return 0, err
	}
	defer refs.Close()

	var cands stream.Source
	if len(args) == 4 {
		fileSource, err := stream.NewFileSource(args[2], args[3], extractor, errors.ExitCandPairing)
		if err != nil {
			return 0, err
		}
		cands = fileSource
	} else {
		consumer := kafka.NewConsumer(cfg.Kafka)
		cands = stream.NewKafkaSource(consumer, extractor)
		slog.Info("consuming candidates from kafka",
			"topic", cfg.Kafka.Topic,
			"group", cfg.Kafka.ConsumerGroup,
		)
	}
	defer cands.Close()

	var reporters report.Multi
	if cfg.Aligner.PrintPairs {
		reporters = append(reporters, report.NewWriter(os.Stdout))
	} else {
		reporters = append(reporters, report.NewCounter())
	}

	var pairStore *report.PairStore
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.New(cfg.Postgres)
		if err != nil {
			return 0, err
		}
		defer pgClient.Close()
		pairStore, err = report.NewPairStore(ctx, pgClient, 100)
		if err != nil {
			return 0, err
		}
		reporters = append(reporters, pairStore)
	}

	var reporter report.Reporter = reporters
	if len(reporters) == 1 {
		reporter = reporters[0]
	}

	var filter *dedupe.Filter
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return 0, err
		}
		defer redisClient.Close()
		filter = dedupe.NewFilter(redisClient, cfg.Redis.SeenTTL)
	}

	hits, err := aligner.New(cfg.Aligner, reporter, filter, m).Run(ctx, refs, cands)

	if pairStore != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if flushErr := pairStore.Flush(flushCtx); flushErr != nil {
			slog.Error("failed to flush alignment sink", "error", flushErr)
		}
	}

	return hits, err
}
