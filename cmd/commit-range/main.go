// Command commit-range resolves the commit range introduced by the CI
// trigger event and publishes it as the commit-range step output.
//
// Typical use as a workflow step:
//
//	- id: commit-range
//	  run: commit-range
//	- run: git log "${{ steps.commit-range.outputs.commit-range }}"
//
// An empty published range means no range could be determined (single
// commit push, or an event with no derivation rule); the command still
// exits zero in that case so callers can fall back to other change
// detection.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/wkentaro/commitrange"
	"github.com/wkentaro/commitrange/action"
	"github.com/wkentaro/commitrange/config"
	"github.com/wkentaro/commitrange/git"
	"github.com/wkentaro/commitrange/remote"
	"github.com/wkentaro/commitrange/trigger"
)

var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "", "config file (default .commitrange.yaml)")
		eventName   = flag.String("event", "", "event name override (push, pull_request, ...)")
		eventPath   = flag.String("event-path", "", "event payload file override")
		repoPath    = flag.String("repo", ".", "path to the local checkout")
		output      = flag.String("output", "", "output mode: github-output or stdout")
		list        = flag.Bool("list", false, "also print the commits the range selects (needs a checkout)")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error")
		logFormat   = flag.String("log-format", "", "log format: text or json")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("commit-range", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "commit-range:", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	logger := newLogger(cfg)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	if err := run(context.Background(), cfg, logger, *eventName, *eventPath, *repoPath, *list); err != nil {
		logger.Error("commit range resolution failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, eventName, eventPath, repoPath string, list bool) error {
	ev, err := detectEvent(eventName, eventPath)
	if err != nil {
		return err
	}
	logger.Debug("trigger event decoded", "kind", ev.Kind, "event", ev.Name)

	repo, deepenFailed := openRepo(ctx, cfg, logger, repoPath, ev)

	var lister commitrange.ParentLister
	if repo != nil {
		lister = repo
		if deepenFailed && cfg.Provider != "none" {
			if fallback := apiFallback(ctx, cfg, logger, repo); fallback != nil {
				lister = fallback
			}
		}
	} else if cfg.Provider != "none" {
		lister, err = remoteLister(ctx, cfg)
		if err != nil {
			return err
		}
	}

	rng, err := commitrange.New(lister, commitrange.WithLogger(logger)).Resolve(ctx, ev)
	if err != nil {
		return err
	}
	logger.Info("commit range resolved", "range", rng, "event", ev.Name)

	if err := publish(cfg, rng); err != nil {
		return err
	}

	if list {
		if repo == nil {
			return fmt.Errorf("-list needs a local checkout")
		}
		commits, err := repo.RevList(ctx, rng)
		if err != nil {
			return err
		}
		for _, sha := range commits {
			fmt.Println(sha)
		}
	}

	return nil
}

// detectEvent picks the trigger source: explicit flags first, then the CI
// platform's environment.
func detectEvent(eventName, eventPath string) (commitrange.Event, error) {
	if eventName != "" {
		if eventPath == "" {
			eventPath = os.Getenv("GITHUB_EVENT_PATH")
		}
		if eventPath == "" {
			return commitrange.NewOtherEvent(eventName), nil
		}
		payload, err := os.ReadFile(eventPath)
		if err != nil {
			return commitrange.Event{}, fmt.Errorf("read event payload: %w", err)
		}
		return trigger.Decode(eventName, payload)
	}

	if os.Getenv("GITLAB_CI") == "true" {
		return trigger.FromGitLabEnv()
	}
	return trigger.FromActionsEnv()
}

// openRepo returns a git context for the checkout, nil when there is none.
// Shallow clones are deepened best-effort before push resolution so the
// oldest commit's parents are reachable; a failed deepen is reported so
// the caller can switch to API parent lookup.
func openRepo(ctx context.Context, cfg *config.Config, logger *slog.Logger, repoPath string, ev commitrange.Event) (*git.Context, bool) {
	repo, err := git.NewContext(repoPath)
	if err != nil {
		logger.Debug("no usable local checkout", "path", repoPath, "error", err)
		return nil, false
	}

	deepenFailed := false
	if ev.Kind == commitrange.KindPush && repo.IsShallow(ctx) {
		if err := repo.Deepen(ctx, cfg.Remote, cfg.FetchDepth); err != nil {
			logger.Warn("could not deepen shallow clone", "error", err)
			deepenFailed = true
		}
	}

	return repo, deepenFailed
}

// apiFallback builds an API-backed lister from the checkout's remote URL,
// for shallow clones whose history could not be deepened. Returns nil when
// no provider or token can be derived; resolution then proceeds against
// the local checkout and may fail on unreachable parents.
func apiFallback(ctx context.Context, cfg *config.Config, logger *slog.Logger, repo *git.Context) commitrange.ParentLister {
	url, err := repo.GetRemoteURL(ctx, cfg.Remote)
	if err != nil {
		logger.Warn("no remote URL for API fallback", "remote", cfg.Remote, "error", err)
		return nil
	}

	lister, err := remote.ListerFromEnv(url)
	if err != nil {
		logger.Warn("no API fallback available", "url", url, "error", err)
		return nil
	}

	logger.Info("shallow clone not deepened; using API parent lookup", "url", url)
	return lister
}

// remoteLister builds an API-backed parent lister from configuration and
// the CI platform's repository identification variables.
func remoteLister(ctx context.Context, cfg *config.Config) (commitrange.ParentLister, error) {
	provider := cfg.Provider
	if provider == "auto" {
		switch {
		case os.Getenv("GITHUB_REPOSITORY") != "":
			provider = "github"
		case os.Getenv("CI_PROJECT_PATH") != "":
			provider = "gitlab"
		default:
			return nil, fmt.Errorf("no checkout and no repository identification in environment")
		}
	}

	switch provider {
	case "github":
		slug := os.Getenv("GITHUB_REPOSITORY")
		owner, repo, ok := strings.Cut(slug, "/")
		if !ok {
			return nil, fmt.Errorf("GITHUB_REPOSITORY %q is not owner/repo", slug)
		}

		token, err := githubToken(ctx, cfg)
		if err != nil {
			return nil, err
		}

		var opts []remote.GitHubOption
		if cfg.APIBaseURL != "" {
			opts = append(opts, remote.WithBaseURL(cfg.APIBaseURL))
		}
		return remote.NewGitHubLister(token, owner, repo, opts...)

	case "gitlab":
		token := tokenFromEnv(cfg, "GITLAB_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("%w: GITLAB_TOKEN or GIT_TOKEN", remote.ErrNoToken)
		}
		return remote.NewGitLabLister(token, cfg.APIBaseURL, os.Getenv("CI_PROJECT_PATH"))

	default:
		return nil, fmt.Errorf("%w: %s", remote.ErrUnknownProvider, provider)
	}
}

// githubToken resolves GitHub credentials: App authentication when
// configured, otherwise the token environment variables.
func githubToken(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.AppID != "" && cfg.PrivateKeyPath != "" {
		pemBytes, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return "", fmt.Errorf("read app private key: %w", err)
		}
		var opts []remote.AppOption
		if cfg.APIBaseURL != "" {
			opts = append(opts, remote.WithAppBaseURL(cfg.APIBaseURL))
		}
		auth, err := remote.NewAppAuth(cfg.AppID, cfg.InstallationID, pemBytes, opts...)
		if err != nil {
			return "", err
		}
		return auth.InstallationToken(ctx)
	}

	// Empty is fine for public repositories.
	return tokenFromEnv(cfg, "GITHUB_TOKEN"), nil
}

func tokenFromEnv(cfg *config.Config, conventional string) string {
	if cfg.TokenEnv != "" {
		return os.Getenv(cfg.TokenEnv)
	}
	if tok := os.Getenv(conventional); tok != "" {
		return tok
	}
	return os.Getenv("GIT_TOKEN")
}

func publish(cfg *config.Config, rng string) error {
	switch cfg.Output {
	case "stdout":
		fmt.Println(rng)
		return nil
	default:
		return action.Publish(action.RangeOutputName, rng)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	runID, err := gonanoid.New(8)
	if err != nil {
		return slog.New(handler)
	}
	return slog.New(handler).With("run_id", runID)
}
