package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
	"motorhub.backend/pkg/logger"
)

const (
	streamPingInterval = 15 * time.Second
	streamWriteTimeout = 5 * time.Second
)

// StreamHandler pushes live collection snapshots over websocket
type StreamHandler struct {
	subscriptionUsecase *usecases.SubscriptionUsecase
	upgrader            websocket.Upgrader
}

// NewStreamHandler creates a new stream handler. Browser upgrades are
// accepted only from allowedOrigins.
func NewStreamHandler(subscriptionUsecase *usecases.SubscriptionUsecase, allowedOrigins []string) *StreamHandler {
	return &StreamHandler{
		subscriptionUsecase: subscriptionUsecase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if middleware.OriginAllowed(allowedOrigins, origin) {
					return true
				}
				logger.Warn(r.Context(), "Websocket origin rejected", zap.String("origin", origin))
				return false
			},
		},
	}
}

// Stream subscribes the caller to a collection. The first message is the
// current snapshot; every later message replaces it.
// GET /api/v1/stream/:collection
func (h *StreamHandler) Stream(c *gin.Context) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()

	collection := entities.Collection(c.Param("collection"))
	snapshots, err := h.subscriptionUsecase.Stream(ctx, middleware.GetActor(c), collection)
	if err != nil {
		response.Error(c, err)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(ctx, "Websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	// Client frames are ignored; a read error means the peer went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(streamWriteTimeout)); err != nil {
				return
			}
		case snapshot, ok := <-snapshots:
			if !ok {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream ended"),
					time.Now().Add(streamWriteTimeout))
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := ws.WriteJSON(gin.H{"collection": collection, "items": snapshot}); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logger.Debug(ctx, "Websocket closed", zap.String("collection", string(collection)))
				}
				return
			}
		}
	}
}
