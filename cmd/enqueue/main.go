package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"langid/packages/config"
	"langid/packages/db"
	"langid/packages/domain"
	"langid/packages/hints"
	"langid/packages/logging"
)

type jobQueue interface {
	EnqueueJob(ctx context.Context, url string, hints domain.RawHints) (int64, error)
}

type openFunc func(ctx context.Context) (jobQueue, func(), error)

type jobSpec struct {
	URL   string
	Hints domain.RawHints
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newEnqueueCmd(openStorage).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func openStorage(ctx context.Context) (jobQueue, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logging.Setup("langid-enqueue", cfg.LogFile, cfg.LogLevel)

	storage, err := db.New(ctx, cfg.DatabaseURL, db.Config{JobTimeout: cfg.JobTimeout})
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(ctx); err != nil {
		storage.Close()
		return nil, nil, err
	}
	return storage, storage.Close, nil
}

func newEnqueueCmd(open openFunc) *cobra.Command {
	var defaults domain.RawHints

	cmd := &cobra.Command{
		Use:   "langid-enqueue [urls...]",
		Short: "Queue URLs for language detection",
		Long: `Queue URLs for language detection by the langid worker.

URLs are taken from the arguments, or one per line from stdin when no
arguments are given. A stdin line may carry its own hints after the URL:

  https://example.ch/ lang=de encoding=UTF8 tld=ch content-language=de-CH

Blank lines and lines starting with # are ignored. Hint flags apply to every
URL unless a line overrides them. Entries with an unusable URL or hint are
reported and skipped.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = strings.NewReader(strings.Join(args, "\n"))
			if len(args) == 0 {
				in = cmd.InOrStdin()
			}
			return runEnqueue(cmd.Context(), cmd.OutOrStdout(), in, defaults, open)
		},
	}

	cmd.Flags().StringVar(&defaults.Language, "lang", "", "language hint, by code or name")
	cmd.Flags().StringVar(&defaults.Encoding, "encoding", "", "encoding hint, by table name or charset label")
	cmd.Flags().StringVar(&defaults.TopLevelDomain, "tld", "", "top-level domain hint")
	cmd.Flags().StringVar(&defaults.ContentLanguage, "content-language", "", "Content-Language hint")
	return cmd
}

func runEnqueue(ctx context.Context, out io.Writer, in io.Reader, defaults domain.RawHints, open openFunc) error {
	jobs, rejected, err := readJobs(in, defaults)
	if err != nil {
		return err
	}
	for _, r := range rejected {
		fmt.Fprintln(out, "rejected:", r)
	}
	total := len(jobs) + len(rejected)
	if len(jobs) == 0 {
		if total == 0 {
			return errors.New("no URLs given")
		}
		return fmt.Errorf("%d of %d entries rejected", len(rejected), total)
	}

	queue, closeQueue, err := open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open job queue: %w", err)
	}
	defer closeQueue()

	for _, job := range jobs {
		id, err := queue.EnqueueJob(ctx, job.URL, job.Hints)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "queued %d %s\n", id, job.URL)
	}
	fmt.Fprintf(out, "Queued %d jobs, rejected %d\n", len(jobs), len(rejected))

	if len(rejected) > 0 {
		return fmt.Errorf("%d of %d entries rejected", len(rejected), total)
	}
	return nil
}

func readJobs(in io.Reader, defaults domain.RawHints) ([]jobSpec, []error, error) {
	var jobs []jobSpec
	var rejected []error

	scanner := bufio.NewScanner(in)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		job, err := parseLine(line, defaults)
		if err != nil {
			rejected = append(rejected, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		jobs = append(jobs, job)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read URLs: %w", err)
	}
	return jobs, rejected, nil
}

// parseLine reads "URL [key=value ...]". Hints are validated here so that a
// typo is reported at once instead of as a rejected job later.
func parseLine(line string, defaults domain.RawHints) (jobSpec, error) {
	fields := strings.Fields(line)
	job := jobSpec{URL: fields[0], Hints: defaults}

	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return jobSpec{}, fmt.Errorf("%q: expected key=value", f)
		}
		switch strings.ToLower(key) {
		case "lang", "language":
			job.Hints.Language = value
		case "encoding":
			job.Hints.Encoding = value
		case "tld":
			job.Hints.TopLevelDomain = value
		case "content-language":
			job.Hints.ContentLanguage = value
		default:
			return jobSpec{}, fmt.Errorf("unknown hint %q", key)
		}
	}

	u, err := url.Parse(job.URL)
	if err != nil {
		return jobSpec{}, err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return jobSpec{}, fmt.Errorf("%q is not an http(s) URL", job.URL)
	}
	if _, err := hints.Resolve(job.Hints); err != nil {
		return jobSpec{}, err
	}
	return job, nil
}
