// Pocket is the command-line companion for the Lucas FII Research
// subscription: it checks your plan, fetches content lists, and keeps
// the saved-login credentials used for biometric re-login.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/oklog/run"
	"github.com/sethvargo/go-envconfig"
	_ "golang.org/x/crypto/x509roots/fallback"

	pkterrs "github.com/lucasfiiresearch/pocket/errors"
	"github.com/lucasfiiresearch/pocket/internal/content"
	"github.com/lucasfiiresearch/pocket/internal/credstore"
	"github.com/lucasfiiresearch/pocket/internal/entitlement"
	"github.com/lucasfiiresearch/pocket/internal/session"
	"github.com/lucasfiiresearch/pocket/logger"
)

type config struct {
	APIOrigin    string        `env:"API_ORIGIN, default=https://lucasfiiresearch.com.br"`
	SessionFile  string        `env:"SESSION_FILE, default=session.json"`
	Database     string        `env:"DATABASE, default=pocket.db"`
	PollInterval time.Duration `env:"POLL_INTERVAL, default=60s"`

	// Keys sealing the credential store; only the credential
	// commands need them.
	CredHashKey  string `env:"CRED_HASH_KEY"`
	CredBlockKey string `env:"CRED_BLOCK_KEY"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`
}

const usage = `usage: pocket <command>

commands:
  videos          list investment thesis videos
  reports         list weekly report PDFs
  etfs            list ETF report PDFs
  notifications   list your notifications
  watch           poll notifications until interrupted
  save-login      store the email/password pair for biometric re-login
  logout          clear saved credentials
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}
	logger.Setup(cfg.LoggerFormat)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := runCommand(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		slog.Error("command failed", "command", os.Args[1], "err", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, cfg config, name string, args []string) error {
	switch name {
	case "videos":
		return fetchAndPrint(ctx, cfg, content.CategoryThesisVideos)
	case "reports":
		return fetchAndPrint(ctx, cfg, content.CategoryWeeklyReports)
	case "etfs":
		return fetchAndPrint(ctx, cfg, content.CategoryEtfReports)
	case "notifications":
		return fetchAndPrint(ctx, cfg, content.CategoryNotifications)
	case "watch":
		return watch(ctx, cfg)
	case "save-login":
		return saveLogin(ctx, cfg, args)
	case "logout":
		return logout(ctx, cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", name)
	}
}

// fetchAndPrint is the access path every content command goes
// through: resolve the plan from the session right now, gate, then
// fetch. The entitlement decision is never cached between attempts.
func fetchAndPrint(ctx context.Context, cfg config, cat content.Category) error {
	provider := session.FileProvider{Path: cfg.SessionFile}

	profile, err := provider.Current(ctx)
	if err != nil {
		return fmt.Errorf("error loading session: %s", err)
	}

	ent := entitlement.Resolve(profile.PublicMetadata)
	if !entitlement.CanAccess(ent, cat) {
		fmt.Println(entitlement.DenialMessage(cat))
		return nil
	}

	client := content.New(cfg.APIOrigin, content.WithTokenSource(provider))
	items, err := client.Fetch(ctx, cat, profile.ID)
	if err != nil {
		if kind, ok := pkterrs.KindOf(err); ok {
			fmt.Println(userMessage(kind, err))
			return nil
		}
		return err
	}

	printItems(items)
	return nil
}

// Each error bucket gets its own wording so "sign in again" is never
// confused with "no internet" or "no content yet".
func userMessage(kind pkterrs.Kind, err error) string {
	switch kind {
	case pkterrs.KindNetwork:
		return "No connection. Check your internet and try again."
	case pkterrs.KindAuth:
		return "Your session expired. Sign in again."
	case pkterrs.KindEntitlement:
		return "An active plan is required. Visit lucasfiiresearch.com.br to get yours."
	case pkterrs.KindFormat:
		return "The server returned something unexpected. Try again later."
	default:
		return fmt.Sprintf("Request failed: %s", err)
	}
}

func printItems(items []content.ContentItem) {
	if len(items) == 0 {
		fmt.Println("no content yet")
		return
	}

	for _, item := range items {
		created := item.Created()
		if created == "" {
			created = "undated"
		}
		fmt.Printf("%s  %s  (%s)\n", item.ItemID(), item.ItemTitle(), created)
	}
}

// watch polls the notifications endpoint on an interval. Polls race
// freely; the Latest guard makes sure only the newest one prints.
func watch(ctx context.Context, cfg config) error {
	provider := session.FileProvider{Path: cfg.SessionFile}
	client := content.New(cfg.APIOrigin, content.WithTokenSource(provider))

	var (
		g      run.Group
		latest content.Latest
	)

	pollCtx, cancel := context.WithCancel(ctx)
	g.Add(func() error {
		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()

		for {
			poll(pollCtx, cfg, client, provider, &latest)

			select {
			case <-pollCtx.Done():
				return pollCtx.Err()
			case <-ticker.C:
			}
		}
	}, func(error) {
		cancel()
	})
	g.Add(run.SignalHandler(pollCtx, os.Interrupt))

	err := g.Run()
	var sigErr run.SignalError
	if errors.As(err, &sigErr) || errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func poll(ctx context.Context, cfg config, client *content.Client, provider session.FileProvider, latest *content.Latest) {
	token := latest.Begin()

	profile, err := provider.Current(ctx)
	if err != nil {
		slog.Error("error loading session", "err", err)
		return
	}

	items, err := client.Notifications(ctx, profile.ID)
	if !latest.Current(token) {
		// A newer poll superseded this one.
		return
	}
	if err != nil {
		if kind, ok := pkterrs.KindOf(err); ok {
			slog.Warn("poll failed", "kind", kind, "err", err)
			return
		}
		slog.Error("error fetching notifications", "err", err)
		return
	}

	slog.Info("notifications", "count", len(items))
	for _, n := range items {
		fmt.Printf("%s  %s\n", n.ID, n.Title)
	}
}

func openStore(cfg config) (*credstore.Store, error) {
	if cfg.CredHashKey == "" {
		return nil, errors.New("CRED_HASH_KEY is required for credential commands")
	}

	var blockKey []byte
	if cfg.CredBlockKey != "" {
		blockKey = []byte(cfg.CredBlockKey)
	}

	return credstore.Open(cfg.Database, []byte(cfg.CredHashKey), blockKey)
}

func saveLogin(ctx context.Context, cfg config, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pocket save-login <email> <password>")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveLogin(ctx, args[0], args[1]); err != nil {
		return err
	}
	if err := store.SetBiometricEnabled(ctx, true); err != nil {
		return err
	}

	fmt.Println("login saved; biometric re-login enabled")
	return nil
}

func logout(ctx context.Context, cfg config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearLogin(ctx); err != nil {
		return err
	}

	fmt.Println("credentials cleared")
	return nil
}
