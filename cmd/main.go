package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/aaroniusdersiebte/DBM/clients/discord"
	obsclient "github.com/aaroniusdersiebte/DBM/clients/obs"
	streamerbotclient "github.com/aaroniusdersiebte/DBM/clients/streamerbot"
	webhookclient "github.com/aaroniusdersiebte/DBM/clients/webhook"
	"github.com/aaroniusdersiebte/DBM/config"
	"github.com/aaroniusdersiebte/DBM/handlers"
	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/middleware"
	bingodatasvc "github.com/aaroniusdersiebte/DBM/services/bingodata"
	botconfigsvc "github.com/aaroniusdersiebte/DBM/services/botconfig"
	"github.com/aaroniusdersiebte/DBM/session"
	"github.com/aaroniusdersiebte/DBM/store"
	"github.com/aaroniusdersiebte/DBM/usecases/bingo"
	"github.com/aaroniusdersiebte/DBM/usecases/dispatch"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logs := logstream.New()
	alertMiddleware := middleware.NewErrorAlertMiddleware(logs)

	// Initialize the token cipher and file-backed repositories
	cipher, err := store.NewTokenCipher(cfg.EncryptionKey)
	if err != nil {
		return err
	}

	botConfigRepo := store.NewBotConfigRepository(cfg.DataDir, cipher)
	appSettingsRepo := store.NewAppSettingsRepository(cfg.DataDir)
	bingoConfigRepo := store.NewBingoConfigRepository(cfg.DataDir)
	gamesRepo := store.NewGamesRepository(cfg.DataDir)
	winsRepo := store.NewWinsRepository(cfg.DataDir)
	notificationsRepo := store.NewNotificationsRepository(cfg.DataDir)
	messagesRepo := store.NewGameMessagesRepository(cfg.DataDir)

	botConfigService := botconfigsvc.NewBotConfigService(botConfigRepo)
	bingoDataService := bingodatasvc.NewBingoDataService(
		bingoConfigRepo,
		gamesRepo,
		winsRepo,
		notificationsRepo,
		messagesRepo,
	)

	// Long-lived platform clients; the Discord client is bound to a live
	// session by the session manager on each bot start
	discordClient := discord.NewClient()
	webhookClient := webhookclient.NewClient(&http.Client{Timeout: 10 * time.Second})
	obsClient := obsclient.NewClient()
	streamerbotClient := streamerbotclient.NewClient()

	dispatchUseCase := dispatch.NewDispatchUseCase(
		botConfigService,
		discordClient,
		webhookClient,
		obsClient,
		streamerbotClient,
		logs,
	)
	bingoUseCase := bingo.NewBingoUseCase(bingoDataService, discordClient, logs)
	scheduler := dispatch.NewScheduler(botConfigService, dispatchUseCase, alertMiddleware, logs)

	sessionManager := session.NewManager(
		botConfigService,
		bingoDataService,
		discordClient,
		dispatchUseCase,
		bingoUseCase,
		scheduler,
		obsClient,
		streamerbotClient,
		logs,
	)
	defer sessionManager.Stop(context.Background())

	dashboardHandler := handlers.NewDashboardAPIHandler(
		sessionManager,
		botConfigService,
		bingoDataService,
		bingoUseCase,
		appSettingsRepo,
		logs,
	)
	dashboardHTTPHandler := handlers.NewDashboardHTTPHandler(dashboardHandler)

	router := mux.NewRouter()
	dashboardHTTPHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
