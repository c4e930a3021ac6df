// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

// Command client is the interactive shell of the knowledge platform.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open session storage (file-backed when STATE_DIR is set).
//  4. Select the gateway: in-process mock or HTTP with the auth transport.
//  5. Wire the session store, notification center, state managers, guards.
//  6. Run the command loop.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/ai"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway/httpapi"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/guard"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/mockapi"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/notify"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/config"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/session"
	authstate "github.com/NguyenDinhVu2003/FileManageSystem/internal/state/auth"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/state/documents"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/transport"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
)

// consoleNavigator prints route transitions; the shell has no real router.
type consoleNavigator struct{}

func (consoleNavigator) Navigate(path string) {
	fmt.Printf(">> navigating to %s\n", path)
}

func (consoleNavigator) HardRedirect(path string) {
	fmt.Printf(">> session cleared, redirecting to %s\n", path)
}

// lazySession breaks the construction cycle between the HTTP gateway and
// the session store: the transport needs token access before the store
// exists, because the store needs the gateway.
type lazySession struct {
	store *session.Store
}

func (l *lazySession) AccessToken() string {
	if l.store == nil {
		return ""
	}
	return l.store.AccessToken()
}

func (l *lazySession) Refresh(ctx context.Context) (*gateway.AuthSession, error) {
	return l.store.Refresh(ctx)
}

func (l *lazySession) Logout(ctx context.Context) error {
	return l.store.Logout(ctx)
}

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	// ── 1. Session storage ────────────────────────────────────────────────
	var storage session.Storage
	if cfg.StateDir != "" {
		fileStorage, err := session.NewFileStorage(filepath.Join(cfg.StateDir, "session.json"))
		must(log, err, "open session storage")
		defer fileStorage.Close()
		storage = fileStorage
	} else {
		storage = session.NewMemoryStorage()
	}

	// ── 2. Gateway ────────────────────────────────────────────────────────
	navigator := consoleNavigator{}
	tokenHolder := &lazySession{}

	var gw gateway.Gateway
	if cfg.UseMockAPI {
		tokens := sec.NewTokenService("client-embedded-secret", constants.AuthIssuer)
		gw = mockapi.NewService(tokens, log)
	} else {
		authTransport := transport.New(nil, tokenHolder, log)
		gw = httpapi.NewClient(cfg.APIBaseURL, authTransport, cfg.RequestTimeout, log)
	}

	// ── 3. Session store and state layer ──────────────────────────────────
	store := session.NewStore(storage, gw, navigator, log,
		session.WithIdleTimeout(cfg.SessionIdleTimeout),
	)
	defer store.Close()
	tokenHolder.store = store

	center := notify.NewCenter()
	assistant := ai.NewService(gw, log)
	authManager := authstate.NewManager(store, center, navigator, log)
	docManager := documents.NewManager(gw, center, log)
	docView := documents.NewView(docManager.State())
	authGuard := guard.NewAuth(store, navigator)

	// Print notifications as they arrive.
	notifications, cancel := center.Notifications().Subscribe()
	defer cancel()
	go func() {
		seen := map[string]bool{}
		for list := range notifications {
			for i := len(list) - 1; i >= 0; i-- {
				n := list[i]
				if !seen[n.ID] {
					seen[n.ID] = true
					fmt.Printf("[%s] %s: %s\n", n.Severity, n.Title, n.Message)
				}
			}
		}
	}()

	runShell(store, authManager, docManager, docView, authGuard, assistant, log)
}

func runShell(store *session.Store, authManager *authstate.Manager, docManager *documents.Manager, docView *documents.View, authGuard *guard.Auth, assistant *ai.Service, log *slog.Logger) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("knowledge platform shell — type 'help' for commands")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		store.Activity()

		command, args := fields[0], fields[1:]
		switch command {
		case "help":
			printHelp()

		case "login":
			if len(args) < 2 {
				fmt.Println("usage: login <email> <password>")
				continue
			}
			authManager.Login(ctx, args[0], args[1])

		case "register":
			if len(args) < 4 {
				fmt.Println("usage: register <email> <password> <first> <last>")
				continue
			}
			authManager.Register(ctx, users.CreateRequest{
				Email:     args[0],
				Password:  args[1],
				FirstName: args[2],
				LastName:  args[3],
			})

		case "logout":
			authManager.Logout(ctx)

		case "whoami":
			user := store.CurrentUser()
			if user == nil {
				fmt.Println("not signed in")
				continue
			}
			fmt.Printf("%s <%s> role=%s department=%s\n", user.FullName(), user.Email, user.Role, user.Department)

		case "list":
			if !authGuard.CanActivate("/documents") {
				continue
			}
			docManager.LoadDocuments(ctx, document.SearchFilters{}, pagination.Request{})
			printDocuments(docManager.State().Get().Documents)

		case "search":
			if len(args) == 0 {
				fmt.Println("usage: search <query>")
				continue
			}
			docManager.Search(ctx, strings.Join(args, " "), document.SearchFilters{}, pagination.Request{})
			view := documents.Search(docManager.State().Get())
			if !view.HasResults {
				fmt.Println("no results")
				continue
			}
			printDocuments(view.Results.Documents)

		case "show":
			if len(args) == 0 {
				fmt.Println("usage: show <id>")
				continue
			}
			doc, ok := selectDocument(ctx, docManager, args[0])
			if !ok {
				continue
			}
			fmt.Printf("%s (%s)\n%s\nrating %.1f (%d votes), %d views, %d downloads\n",
				doc.Title, doc.Category, doc.Description,
				doc.Rating.Average, doc.Rating.Count, doc.ViewCount, doc.DownloadCount)

		case "rate":
			if len(args) < 2 {
				fmt.Println("usage: rate <id> <1-5>")
				continue
			}
			stars, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("rating must be a number")
				continue
			}
			docManager.Rate(ctx, document.RateRequest{DocumentID: args[0], Rating: stars})

		case "comment":
			if len(args) < 2 {
				fmt.Println("usage: comment <id> <text>")
				continue
			}
			docManager.AddComment(ctx, document.AddCommentRequest{
				DocumentID: args[0],
				Content:    strings.Join(args[1:], " "),
			})

		case "popular":
			docManager.LoadPopular(ctx, constants.RankedDocumentsLimit)
			printDocuments(docManager.State().Get().PopularDocuments)

		case "recent":
			docManager.LoadRecent(ctx, constants.RankedDocumentsLimit)
			printDocuments(docManager.State().Get().RecentDocuments)

		case "summarize":
			if len(args) == 0 {
				fmt.Println("usage: summarize <id>")
				continue
			}
			doc, ok := selectDocument(ctx, docManager, args[0])
			if !ok {
				continue
			}
			summary, err := assistant.GenerateSummary(ctx, ai.GenerateSummaryRequest{Content: documentText(doc)})
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(summary.Summary)
			for _, point := range summary.KeyPoints {
				fmt.Printf("  - %s\n", point)
			}

		case "suggest":
			if len(args) == 0 {
				fmt.Println("usage: suggest <id>")
				continue
			}
			doc, ok := selectDocument(ctx, docManager, args[0])
			if !ok {
				continue
			}
			suggestion, err := assistant.SuggestTags(ctx, ai.SuggestTagsRequest{Content: documentText(doc)})
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("suggested tags: %s\n", strings.Join(suggestion.Tags, ", "))

		case "ask":
			if len(args) == 0 {
				fmt.Println("usage: ask <query>")
				continue
			}
			answer, err := assistant.Search(ctx, ai.SearchRequest{Query: strings.Join(args, " ")})
			if err != nil {
				fmt.Println(err)
				continue
			}
			if len(answer.Results) == 0 {
				fmt.Println("no matches")
				continue
			}
			for _, result := range answer.Results {
				fmt.Printf("%-12s %-40s %.2f\n", result.DocumentID, result.Title, result.Relevance)
			}

		case "stats":
			docManager.LoadDocuments(ctx, document.SearchFilters{}, pagination.Request{Limit: pagination.MaxLimit})
			stats := docView.Statistics()
			fmt.Printf("documents=%d views=%d downloads=%d avg_rating=%.2f\n",
				stats.Total, stats.TotalViews, stats.TotalDownloads, stats.AverageRating)

		case "quit", "exit":
			return

		default:
			fmt.Printf("unknown command %q — type 'help'\n", command)
		}
	}
}

// selectDocument loads the document into state and returns it, reporting
// the state error to the user when the load failed.
func selectDocument(ctx context.Context, docManager *documents.Manager, id string) (*document.Document, bool) {
	docManager.LoadDocument(ctx, id)
	state := docManager.State().Get()
	if state.SelectedDocument == nil {
		fmt.Println(state.Error)
		return nil, false
	}
	return state.SelectedDocument, true
}

// documentText picks the richest text a document carries for AI analysis.
func documentText(doc *document.Document) string {
	if doc.Content != nil && *doc.Content != "" {
		return *doc.Content
	}
	return doc.Description
}

func printDocuments(docs []document.Document) {
	if len(docs) == 0 {
		fmt.Println("no documents")
		return
	}
	for _, doc := range docs {
		fmt.Printf("%-12s %-40s %-12s %.1f\n", doc.ID, doc.Title, doc.Category, doc.Rating.Average)
	}
}

func printHelp() {
	fmt.Println(`commands:
  login <email> <password>            sign in
  register <email> <pw> <first> <last> create an account
  logout                              sign out
  whoami                              show the signed-in user
  list                                list documents
  search <query>                      search documents
  show <id>                           show one document
  rate <id> <1-5>                     rate a document
  comment <id> <text>                 comment on a document
  summarize <id>                      AI summary of a document
  suggest <id>                        AI tag suggestions for a document
  ask <query>                         AI relevance search
  popular | recent | stats            derived views
  quit                                exit`)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
