package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/collab-booking/internal/application"
	"github.com/example/collab-booking/internal/booking"
)

type sessionService interface {
	ListSessions(ctx context.Context) ([]booking.Session, error)
	DefaultSession(ctx context.Context, now time.Time) (booking.Session, error)
	PartitionRooms(ctx context.Context, sessionID string) (application.Partition, error)
}

type SessionHandler struct {
	service   sessionService
	responder responder
	logger    *slog.Logger
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SessionHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SessionHandler", operation, attrs...)
}

// List returns today's sessions in ascending start order.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "session list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(sessions)).DebugContext(r.Context(), "sessions listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{Sessions: toSessionDTOs(sessions)})
}

// Default returns the current-or-next session for the optional now query parameter.
func (h *SessionHandler) Default(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var now time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("now")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.log(r.Context(), "Default", "error_kind", "bad_request").WarnContext(r.Context(), "invalid now parameter", "value", raw)
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidNow)
			return
		}
		now = parsed
	}

	logger := h.log(r.Context(), "Default")
	session, err := h.service.DefaultSession(r.Context(), now)
	if err != nil {
		logger.ErrorContext(r.Context(), "default session lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Session: toSessionDTO(session)})
}

// Rooms partitions the room list into available and unavailable rooms for the session in the path.
func (h *SessionHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	logger := h.log(r.Context(), "Rooms", "session_id", sessionID)
	partition, err := h.service.PartitionRooms(r.Context(), sessionID)
	if err != nil {
		logger.ErrorContext(r.Context(), "room partition failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, partitionResponse{
		Session:     toSessionDTO(partition.Session),
		Available:   toRoomDTOs(partition.Available),
		Unavailable: toRoomDTOs(partition.Unavailable),
	})
}

type listSessionsResponse struct {
	Sessions []sessionDTO `json:"sessions"`
}

type sessionResponse struct {
	Session sessionDTO `json:"session"`
}

type partitionResponse struct {
	Session     sessionDTO `json:"session"`
	Available   []roomDTO  `json:"available"`
	Unavailable []roomDTO  `json:"unavailable"`
}
