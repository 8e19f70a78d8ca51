// Command prims-maze serves Prim's maze sessions.
//
// It supports three commands:
//  1. "server" (default) runs the HTTP server exposing the REST API, the
//     WebSocket stream and an /mcp HTTP endpoint
//  2. "mcp" runs an MCP stdio server and spins up an internal HTTP API if
//     none is reachable
//  3. "generate" prints a single maze and exits
//
// Settings come from the environment (MAZE_*, optionally via a .env file) and
// can be overridden by flags.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/prims-maze/api"
	"github.com/wricardo/prims-maze/game/config"
	"github.com/wricardo/prims-maze/game/maze"
	"github.com/wricardo/prims-maze/game/service"
	"github.com/wricardo/prims-maze/game/session"
	"github.com/wricardo/prims-maze/logging"
	"github.com/wricardo/prims-maze/transport/mcp"
	"github.com/wricardo/prims-maze/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Prim's Maze Server"
)

const storeSyncInterval = 5 * time.Second

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "prims-maze",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "HTTP server host (MAZE_HOST)"},
			&cli.IntFlag{Name: "port", Usage: "HTTP server port (MAZE_PORT)"},
			&cli.StringFlag{Name: "config-dir", Usage: "Directory containing maze presets (MAZE_CONFIG_DIR)"},
			&cli.StringFlag{Name: "store", Usage: "Session store: file, redis or memory (MAZE_STORE)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (MAZE_LOG_LEVEL)"},
			&cli.BoolFlag{Name: "debug", Usage: "Shorthand for --log-level debug"},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel (NGROK_ENABLED)"},
		},
		Action: runServer,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServer,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-url", Usage: "REST API to proxy (default: http://<host>:<port>)"},
				},
				Action: runStdioMCP,
			},
			{
				Name:  "generate",
				Usage: "Print a maze and exit",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "rows", Value: 21, Usage: "Maze height"},
					&cli.IntFlag{Name: "columns", Value: 21, Usage: "Maze width"},
					&cli.Int64Flag{Name: "seed", Usage: "Seed (random when unset)"},
				},
				Action: runGenerate,
			},
		},
	}
}

// loadSettings reads the environment and applies explicit flags on top.
func loadSettings(cmd *cli.Command) (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("host") {
		settings.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		settings.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("config-dir") {
		settings.ConfigDir = cmd.String("config-dir")
	}
	if cmd.IsSet("store") {
		settings.Store = cmd.String("store")
	}
	if cmd.IsSet("log-level") {
		settings.LogLevel = cmd.String("log-level")
	}
	if cmd.Bool("debug") {
		settings.LogLevel = "debug"
	}
	if cmd.Bool("ngrok") {
		settings.NgrokEnabled = true
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func newLogger(settings *config.Settings) (*zap.SugaredLogger, error) {
	return logging.New(logging.Options{Level: settings.LogLevel, File: settings.LogFile})
}

// services bundles what the front ends need and how to release it.
type services struct {
	game     service.GameService
	sessions *session.Manager
	store    session.SessionPersistence
	close    func() error
}

// openStore builds the session persistence selected by settings. A nil store
// keeps sessions in memory only.
func openStore(ctx context.Context, settings *config.Settings) (session.SessionPersistence, func() error, error) {
	noop := func() error { return nil }

	switch settings.Store {
	case config.StoreMemory:
		return nil, noop, nil
	case config.StoreRedis:
		store, err := session.DialRedisPersistence(ctx, settings.RedisAddr, settings.RedisPrefix, settings.SessionTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect session store: %w", err)
		}
		return store, store.Close, nil
	default:
		store, err := session.NewFilePersistence(settings.SessionsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
		return store, noop, nil
	}
}

// initializeServices wires session/config managers and the game service.
func initializeServices(ctx context.Context, settings *config.Settings, log *zap.SugaredLogger) (*services, error) {
	configManager, err := config.NewManager(settings.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	store, closeStore, err := openStore(ctx, settings)
	if err != nil {
		return nil, err
	}

	sessionManager := session.NewManagerWithPersistence(store, log.Named("session"))
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Warnw("failed to load persisted sessions", "error", err)
	}

	return &services{
		game:     service.NewGameService(sessionManager, configManager, log.Named("service")),
		sessions: sessionManager,
		store:    store,
		close:    closeStore,
	}, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within ttl.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, ttl time.Duration, log *zap.SugaredLogger) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				log.Infow("cleaned up expired sessions", "count", removed)
			}
		}
	}
}

// storeSyncRoutine drops cached sessions whose stored copy has disappeared,
// either deleted from disk or expired in Redis.
func storeSyncRoutine(ctx context.Context, manager *session.Manager, store session.SessionPersistence, log *zap.SugaredLogger) {
	if store == nil {
		return
	}
	ticker := time.NewTicker(storeSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruneOrphans(manager, store, log)
		}
	}
}

func pruneOrphans(manager *session.Manager, store session.SessionPersistence, log *zap.SugaredLogger) int {
	pruned := 0
	for _, sess := range manager.List() {
		if store.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.Debugw("pruned session missing from store", "session", sess.ID)
		}
	}
	if pruned > 0 {
		log.Infow("store sync pruned orphaned sessions", "count", pruned)
	}
	return pruned
}

// mcpHTTPHandler serves single JSON-RPC messages over POST /mcp.
func mcpHTTPHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runServer starts the HTTP server with REST API, WebSocket hub, and an /mcp
// proxy endpoint. If ngrok is enabled it also provisions a public tunnel.
func runServer(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := initializeServices(ctx, settings, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.close(); err != nil {
			log.Warnw("failed to close session store", "error", err)
		}
	}()

	log.Infow("starting", "app", AppName, "version", Version, "store", settings.Store, "sessions", svc.sessions.Count())

	hub := websocket.NewHub(log.Named("ws"))
	go hub.Run(ctx)

	apiServer := api.NewServer(svc.game, hub, log.Named("api"))

	addr := settings.Addr()
	mcpClient := mcp.NewClient("http://" + addr)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHTTPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("HTTP server listening",
			"addr", addr,
			"api", fmt.Sprintf("http://%s/api", addr),
			"ws", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp", fmt.Sprintf("http://%s/mcp", addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		sessionCleanupRoutine(ctx, svc.sessions, settings.CleanupInterval, settings.SessionTTL, log)
	}()
	go func() {
		defer wg.Done()
		storeSyncRoutine(ctx, svc.sessions, svc.store, log)
	}()

	if settings.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, settings, mainRouter, log.Named("ngrok"))
		}()
	}

	select {
	case <-ctx.Done():
		log.Infow("shutting down")
	case err = <-serveErr:
		log.Errorw("HTTP server failed", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warnw("HTTP server shutdown error", "error", shutdownErr)
	}

	wg.Wait()

	if saveErr := svc.sessions.SaveAllSessions(); saveErr != nil {
		log.Warnw("failed to save sessions", "error", saveErr)
	}
	log.Infow("server stopped")
	return err
}

// runNgrok serves handler through an ngrok tunnel until ctx is done.
func runNgrok(ctx context.Context, settings *config.Settings, handler http.Handler, log *zap.SugaredLogger) {
	authToken := settings.NgrokAuthtoken
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTH_TOKEN")
	}
	if authToken == "" {
		log.Warnw("ngrok enabled but no auth token provided (set NGROK_AUTHTOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if settings.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.NgrokDomain))
		log.Infow("using custom ngrok domain", "domain", settings.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Errorw("failed to start ngrok tunnel", "error", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warnw("failed to close ngrok tunnel", "error", err)
		}
	}()

	url := tun.URL()
	log.Infow("ngrok tunnel established", "url", url, "api", url+"/api", "mcp", url+"/mcp")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Warnw("ngrok server error", "error", err)
	}
	log.Infow("ngrok tunnel closed")
}

// runStdioMCP runs an MCP stdio server. It reuses the API at --api-url when
// it answers, otherwise it serves an internal API on a loopback port.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	baseURL := cmd.String("api-url")
	if baseURL == "" {
		baseURL = "http://" + settings.Addr()
	}

	if !apiReachable(baseURL) {
		log.Infow("no external API server found, starting internal HTTP server", "checked", baseURL)

		svc, err := initializeServices(ctx, settings, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := svc.sessions.SaveAllSessions(); err != nil {
				log.Warnw("failed to save sessions", "error", err)
			}
			if err := svc.close(); err != nil {
				log.Warnw("failed to close session store", "error", err)
			}
		}()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub(log.Named("ws"))
		hubCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go hub.Run(hubCtx)

		httpServer := &http.Server{Handler: api.NewServer(svc.game, hub, log.Named("api"))}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("internal HTTP server error", "error", err)
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
	}

	log.Infow("MCP stdio server ready", "api", baseURL)
	if err := server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

func apiReachable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/healthz")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	var seed *int64
	if cmd.IsSet("seed") {
		s := cmd.Int64("seed")
		seed = &s
	}
	return writeMaze(cmd.Root().Writer, int(cmd.Int("rows")), int(cmd.Int("columns")), seed)
}

// writeMaze generates one maze and prints its seed and layout.
func writeMaze(w io.Writer, rows, columns int, seed *int64) error {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		var err error
		if s, err = maze.NewSeed(); err != nil {
			return err
		}
	}

	grid, err := maze.Generate(rows, columns, maze.NewRand(s))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# %dx%d seed=%d exit=%s\n", columns, rows, s, grid.Exit())
	fmt.Fprintln(w, grid.String())
	return nil
}
