// Command chessnav serves the chess grid navigator.
//
// Commands:
//  1. "serve" runs the HTTP server exposing the REST API, WebSocket updates and an /mcp endpoint
//  2. "mcp" runs an MCP stdio server against an API, starting an internal one if none is reachable
//  3. "route" answers a single routing query from the command line
//
// Flags control host/port, config and session directories, debug logging,
// and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/chessnav/api"
	"github.com/wricardo/mcp-training/chessnav/game/config"
	"github.com/wricardo/mcp-training/chessnav/game/engine"
	"github.com/wricardo/mcp-training/chessnav/game/service"
	"github.com/wricardo/mcp-training/chessnav/game/session"
	"github.com/wricardo/mcp-training/chessnav/transport/mcp"
	"github.com/wricardo/mcp-training/chessnav/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Chess Grid Navigator"
)

const (
	sessionMaxAge       = 24 * time.Hour
	sessionCleanupEvery = time.Hour
	filesystemSyncEvery = 5 * time.Second
)

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "chessnav",
		Usage:   "Shortest routes for chess pieces on obstacle grids",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing board configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			routeCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server", "http"},
		Usage:   "Run the HTTP server with REST API, WebSocket and MCP endpoint",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:  "host",
				Value: "localhost",
				Usage: "HTTP server host",
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "Directory where sessions are persisted",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))
			log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

			navigator, sessions, err := initializeServices(cmd.String("config-dir"), cmd.String("sessions-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}

			return runHTTPServer(ctx, navigator, sessions, serveOptions{
				addr:        fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port")),
				ngrok:       cmd.Bool("ngrok"),
				ngrokAuth:   cmd.String("ngrok-auth"),
				ngrokDomain: cmd.String("ngrok-domain"),
			})
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "Run an MCP stdio server backed by the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:8080",
				Usage:   "REST API to proxy; an internal server is started if it is unreachable",
				Sources: cli.EnvVars("CHESSNAV_API_URL"),
			},
			&cli.StringFlag{
				Name:  "sessions-dir",
				Value: "sessions",
				Usage: "Directory where the internal server persists sessions",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Stdout belongs to the MCP protocol
			log.SetOutput(os.Stderr)
			setupLogging(cmd.Bool("debug"))

			return runStdioMCP(ctx, cmd.String("api-url"), cmd.String("config-dir"), cmd.String("sessions-dir"))
		},
	}
}

func routeCommand() *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "Print the shortest route for a piece on a configured board",
		ArgsUsage: "FROM TO (cells as x,y)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "board",
				Value: "classic",
				Usage: "Board config ID from the config directory",
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "Inline layout rows separated by '/', overrides --board",
			},
			&cli.StringFlag{
				Name:  "piece",
				Usage: "Piece type; defaults to the piece standing on FROM",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))

			if cmd.Args().Len() != 2 {
				return fmt.Errorf("route needs exactly two cells, got %d arguments", cmd.Args().Len())
			}
			from, err := parseCell(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			to, err := parseCell(cmd.Args().Get(1))
			if err != nil {
				return err
			}

			layout, err := routeLayout(cmd.String("config-dir"), cmd.String("board"), cmd.String("layout"))
			if err != nil {
				return err
			}

			return runRoute(cmd.Root().Writer, layout, cmd.String("piece"), from, to)
		},
	}
}

// main loads .env, wires signal handling and runs the command tree
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

type serveOptions struct {
	addr        string
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

// newHandler mounts the REST API and the /mcp endpoint on one mux
func newHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
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

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer serves until ctx is cancelled, then shuts down and persists sessions.
// If ngrok is enabled it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, navigator service.NavigatorService, sessions *session.Manager, opts serveOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	go sessionCleanupRoutine(ctx, sessions)
	go filesystemSyncRoutine(ctx, sessions)

	apiServer := api.NewServer(navigator, hub)
	mcpClient := mcp.NewClient("http://" + opts.addr)
	handler := newHandler(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         opts.addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", opts.addr)
		log.Printf("REST API: http://%s/api", opts.addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", opts.addr)
		log.Printf("MCP endpoint: http://%s/mcp", opts.addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
	}()

	if opts.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler, opts)
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()

	if err := sessions.SaveAllSessions(); err != nil {
		log.Printf("Warning: Failed to save sessions: %v", err)
	}
	log.Println("Server stopped")

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	default:
		return nil
	}
}

func runNgrokTunnel(ctx context.Context, handler http.Handler, opts serveOptions) {
	if opts.ngrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		log.Printf("Using custom ngrok domain: %s", opts.ngrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.ngrokAuth))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	// Serve returns once the tunnel is closed
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires the config and session managers into the navigator
// service and restores persisted sessions
func initializeServices(configDir, sessionsDir string) (service.NavigatorService, *session.Manager, error) {
	// Config manager first, persistence resolves configs through it
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(sessionsDir, configManager)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)

	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	return service.NewNavigatorService(sessionManager, configManager), sessionManager, nil
}

// sessionCleanupRoutine periodically evicts sessions that have not been
// accessed within sessionMaxAge
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(sessionCleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// filesystemSyncRoutine drops sessions from memory when their files are
// deleted from the sessions directory
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(filesystemSyncEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := manager.PruneOrphans(); pruned > 0 {
				log.Printf("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
			}
		}
	}
}

// apiReachable reports whether a navigator API answers on baseURL
func apiReachable(baseURL string) bool {
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(strings.TrimSuffix(baseURL, "/") + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCP runs an MCP stdio server. It reuses the API at apiURL when it is
// up; otherwise it starts an internal API bound to a random loopback port.
func runStdioMCP(ctx context.Context, apiURL, configDir, sessionsDir string) error {
	baseURL := apiURL

	log.Printf("Checking for external API server at %s...", apiURL)
	if apiReachable(apiURL) {
		log.Printf("External API server found at %s, using it for MCP", apiURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		navigator, sessions, err := initializeServices(configDir, sessionsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		defer func() {
			if err := sessions.SaveAllSessions(); err != nil {
				log.Printf("Warning: Failed to save sessions: %v", err)
			}
		}()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(navigator, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
		log.Printf("Internal HTTP server on %s for MCP stdio", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// parseCell reads a cell written as "x,y"
func parseCell(s string) (engine.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return engine.Cell{}, fmt.Errorf("cell %q must be written as x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return engine.Cell{}, fmt.Errorf("cell %q must use integer coordinates", s)
	}
	return engine.Cell{X: x, Y: y}, nil
}

// routeLayout returns the inline layout when given, otherwise the layout of
// the named board config
func routeLayout(configDir, boardID, inline string) ([]string, error) {
	if inline != "" {
		return strings.Split(inline, "/"), nil
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		return nil, err
	}
	boardConfig, err := manager.LoadConfig(boardID)
	if err != nil {
		return nil, err
	}
	return boardConfig.Layout, nil
}

// runRoute resolves the piece, runs the navigator and prints the route with
// waypoints marked '*' and the target 'X'
func runRoute(w io.Writer, layout []string, pieceName string, from, to engine.Cell) error {
	board, err := engine.ParseLayout(layout)
	if err != nil {
		return err
	}

	piece, err := routePiece(board, pieceName, from)
	if err != nil {
		return err
	}

	result, err := engine.FindPath(piece, from, to, board)
	if err != nil {
		return err
	}

	if !result.Found {
		fmt.Fprintf(w, "%s cannot reach %s from %s (%d cells explored)\n", piece, to, from, result.Expanded)
		return nil
	}

	cells := make([]string, len(result.Path))
	for i, c := range result.Path {
		cells[i] = c.String()
	}
	fmt.Fprintf(w, "%s %s -> %s: %d moves\n%s\n\n", piece, from, to, result.Moves, strings.Join(cells, " -> "))

	rows := make([][]byte, len(layout))
	for y, row := range layout {
		rows[y] = []byte(row)
	}
	for i, c := range result.Path {
		switch {
		case i == len(result.Path)-1:
			rows[c.Y][c.X] = 'X'
		case i > 0:
			rows[c.Y][c.X] = '*'
		}
	}
	for _, row := range rows {
		fmt.Fprintln(w, string(row))
	}
	return nil
}

func routePiece(board *engine.Board, name string, from engine.Cell) (engine.PieceType, error) {
	if name != "" {
		return engine.ParsePieceType(name)
	}
	if !board.InBounds(from) {
		return "", fmt.Errorf("%w: from %s is outside the board", engine.ErrInvalidArgument, from)
	}
	occ, ok := board.Get(from)
	if !ok || occ.Kind != engine.KindPiece {
		return "", fmt.Errorf("no piece on %s; pass --piece", from)
	}
	return occ.Piece, nil
}
