package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/aaroniusdersiebte/DBM/core"
	"github.com/aaroniusdersiebte/DBM/models"
)

// DashboardHTTPHandler exposes the control panel surface over HTTP. The
// panel is a local operator tool; there is deliberately no auth layer.
type DashboardHTTPHandler struct {
	handler *DashboardAPIHandler
}

func NewDashboardHTTPHandler(handler *DashboardAPIHandler) *DashboardHTTPHandler {
	return &DashboardHTTPHandler{
		handler: handler,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *DashboardHTTPHandler) HandleStartBot(w http.ResponseWriter, r *http.Request) {
	log.Printf("🚀 Start bot request received from %s", r.RemoteAddr)

	status, err := h.handler.StartBot(r.Context())
	if err != nil {
		log.Printf("❌ Failed to start bot: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, status)
}

func (h *DashboardHTTPHandler) HandleStopBot(w http.ResponseWriter, r *http.Request) {
	log.Printf("🛑 Stop bot request received from %s", r.RemoteAddr)

	status := h.handler.StopBot(r.Context())
	h.writeJSONResponse(w, http.StatusOK, status)
}

func (h *DashboardHTTPHandler) HandleBotStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.handler.BotStatus())
}

func (h *DashboardHTTPHandler) HandleGetBotConfig(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Get bot config request received from %s", r.RemoteAddr)
	h.writeJSONResponse(w, http.StatusOK, h.handler.GetBotConfig())
}

func (h *DashboardHTTPHandler) HandleSaveBotConfig(w http.ResponseWriter, r *http.Request) {
	log.Printf("💾 Save bot config request received from %s", r.RemoteAddr)

	var config models.BotConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.handler.SaveBotConfig(&config); err != nil {
		log.Printf("❌ Failed to save bot config: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "failed to save bot config"})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *DashboardHTTPHandler) HandleGetAppSettings(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.handler.GetAppSettings())
}

func (h *DashboardHTTPHandler) HandleSaveAppSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.handler.SaveAppSettings(&settings); err != nil {
		log.Printf("❌ Failed to save app settings: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "failed to save app settings"})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *DashboardHTTPHandler) HandleListTriggers(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.handler.ListTriggers())
}

func (h *DashboardHTTPHandler) HandleCreateTrigger(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create trigger request received from %s", r.RemoteAddr)

	var trigger models.Trigger
	if err := json.NewDecoder(r.Body).Decode(&trigger); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.handler.CreateTrigger(trigger)
	if err != nil {
		log.Printf("❌ Failed to create trigger: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "failed to create trigger"})
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, created)
}

func (h *DashboardHTTPHandler) HandleUpdateTrigger(w http.ResponseWriter, r *http.Request) {
	log.Printf("✏️ Update trigger request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var trigger models.Trigger
	if err := json.NewDecoder(r.Body).Decode(&trigger); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.handler.UpdateTrigger(id, trigger)
	if err != nil {
		h.writeErrorResponse(w, err, "failed to update trigger")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, updated)
}

func (h *DashboardHTTPHandler) HandleDeleteTrigger(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Delete trigger request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.handler.DeleteTrigger(id); err != nil {
		h.writeErrorResponse(w, err, "failed to delete trigger")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHTTPHandler) HandleListActions(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.handler.ListActions())
}

func (h *DashboardHTTPHandler) HandleCreateAction(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create action request received from %s", r.RemoteAddr)

	var action models.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.handler.CreateAction(action)
	if err != nil {
		log.Printf("❌ Failed to create action: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "failed to create action"})
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, created)
}

func (h *DashboardHTTPHandler) HandleUpdateAction(w http.ResponseWriter, r *http.Request) {
	log.Printf("✏️ Update action request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var action models.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.handler.UpdateAction(id, action)
	if err != nil {
		h.writeErrorResponse(w, err, "failed to update action")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, updated)
}

func (h *DashboardHTTPHandler) HandleDeleteAction(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Delete action request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.handler.DeleteAction(id); err != nil {
		h.writeErrorResponse(w, err, "failed to delete action")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHTTPHandler) HandleGetBingoConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.handler.GetBingoConfig())
}

func (h *DashboardHTTPHandler) HandleSaveBingoConfig(w http.ResponseWriter, r *http.Request) {
	log.Printf("💾 Save bingo config request received from %s", r.RemoteAddr)

	var config models.BingoConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.handler.SaveBingoConfig(&config); err != nil {
		log.Printf("❌ Failed to save bingo config: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "failed to save bingo config"})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *DashboardHTTPHandler) HandleGetBingoGameData(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.handler.GetBingoGameData())
}

func (h *DashboardHTTPHandler) HandleConfirmBingoEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("✅ Confirm bingo event request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.handler.ConfirmBingoEvent(r.Context(), id); err != nil {
		h.writeErrorResponse(w, err, "failed to confirm bingo event")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]bool{"confirmed": true})
}

func (h *DashboardHTTPHandler) HandleDismissBingoEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Dismiss bingo event request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.handler.DismissBingoEvent(r.Context(), id); err != nil {
		h.writeErrorResponse(w, err, "failed to dismiss bingo event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHTTPHandler) HandleValidateBingoWin(w http.ResponseWriter, r *http.Request) {
	log.Printf("🏆 Validate bingo win request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.handler.ValidateBingoWin(r.Context(), id)
	if err != nil {
		h.writeErrorResponse(w, err, "failed to validate bingo win")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *DashboardHTTPHandler) HandleDismissBingoWin(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Dismiss bingo win request received from %s", r.RemoteAddr)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.handler.DismissBingoWin(r.Context(), id); err != nil {
		h.writeErrorResponse(w, err, "failed to dismiss bingo win")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHTTPHandler) HandleClearBingoGames(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Clear bingo games request received from %s", r.RemoteAddr)

	if err := h.handler.ClearBingoGames(r.Context()); err != nil {
		log.Printf("❌ Failed to clear bingo games: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "failed to clear bingo games"})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (h *DashboardHTTPHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.handler.GetLogs())
}

func (h *DashboardHTTPHandler) HandleClearLogs(w http.ResponseWriter, r *http.Request) {
	h.handler.ClearLogs()
	w.WriteHeader(http.StatusNoContent)
}

// The panel is served from a different origin than the API; CORS is
// enforced on the regular endpoints and the stream carries no secrets.
var logStreamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleStreamLogs upgrades to a WebSocket, replays the retained log
// history and then pushes every new entry until the client disconnects.
func (h *DashboardHTTPHandler) HandleStreamLogs(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Log stream client connecting from %s", r.RemoteAddr)

	conn, err := logStreamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Log stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	entries, cancel := h.handler.SubscribeLogs()
	defer cancel()

	for _, entry := range h.handler.GetLogs() {
		if err := conn.WriteJSON(entry); err != nil {
			return
		}
	}

	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	for entry := range entries {
		if err := conn.WriteJSON(entry); err != nil {
			return
		}
	}
}

func (h *DashboardHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering control panel API endpoints")

	router.HandleFunc("/api/bot/start", h.HandleStartBot).Methods("POST")
	router.HandleFunc("/api/bot/stop", h.HandleStopBot).Methods("POST")
	router.HandleFunc("/api/bot/status", h.HandleBotStatus).Methods("GET")

	router.HandleFunc("/api/config/bot", h.HandleGetBotConfig).Methods("GET")
	router.HandleFunc("/api/config/bot", h.HandleSaveBotConfig).Methods("PUT")
	router.HandleFunc("/api/config/app", h.HandleGetAppSettings).Methods("GET")
	router.HandleFunc("/api/config/app", h.HandleSaveAppSettings).Methods("PUT")

	router.HandleFunc("/api/triggers", h.HandleListTriggers).Methods("GET")
	router.HandleFunc("/api/triggers", h.HandleCreateTrigger).Methods("POST")
	router.HandleFunc("/api/triggers/{id}", h.HandleUpdateTrigger).Methods("PUT")
	router.HandleFunc("/api/triggers/{id}", h.HandleDeleteTrigger).Methods("DELETE")

	router.HandleFunc("/api/actions", h.HandleListActions).Methods("GET")
	router.HandleFunc("/api/actions", h.HandleCreateAction).Methods("POST")
	router.HandleFunc("/api/actions/{id}", h.HandleUpdateAction).Methods("PUT")
	router.HandleFunc("/api/actions/{id}", h.HandleDeleteAction).Methods("DELETE")

	router.HandleFunc("/api/bingo/config", h.HandleGetBingoConfig).Methods("GET")
	router.HandleFunc("/api/bingo/config", h.HandleSaveBingoConfig).Methods("PUT")
	router.HandleFunc("/api/bingo/data", h.HandleGetBingoGameData).Methods("GET")
	router.HandleFunc("/api/bingo/events/{id}/confirm", h.HandleConfirmBingoEvent).Methods("POST")
	router.HandleFunc("/api/bingo/events/{id}/dismiss", h.HandleDismissBingoEvent).Methods("POST")
	router.HandleFunc("/api/bingo/wins/{id}/validate", h.HandleValidateBingoWin).Methods("POST")
	router.HandleFunc("/api/bingo/wins/{id}/dismiss", h.HandleDismissBingoWin).Methods("POST")
	router.HandleFunc("/api/bingo/clear", h.HandleClearBingoGames).Methods("POST")

	router.HandleFunc("/api/logs", h.HandleGetLogs).Methods("GET")
	router.HandleFunc("/api/logs", h.HandleClearLogs).Methods("DELETE")
	router.HandleFunc("/api/logs/stream", h.HandleStreamLogs).Methods("GET")

	log.Printf("✅ All control panel API endpoints registered successfully")
}

// pathID extracts and validates the {id} path parameter.
func (h *DashboardHTTPHandler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	vars := mux.Vars(r)
	id, ok := vars["id"]
	if !ok || !core.IsValidID(id) {
		log.Printf("❌ Missing or invalid ID in URL path")
		h.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "id must be a valid prefixed ULID"})
		return "", false
	}
	return id, true
}

func (h *DashboardHTTPHandler) writeErrorResponse(w http.ResponseWriter, err error, message string) {
	log.Printf("❌ %s: %v", message, err)
	if core.IsNotFoundError(err) {
		h.writeJSONResponse(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	h.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: message})
}

func (h *DashboardHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}
