// Package api defines the Huma API routes and handlers.
package api

import (
	"context"
	"database/sql"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geoplat/tilecover/internal/offline"
)

// Services holds the service dependencies shared across API handlers.
type Services struct {
	Offline *offline.Store
	DB      *sql.DB
	DataDir string
}

// MessageBody is a generic result message.
type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds handlers with no natural home of their own (health).
// RegisterRoutes calls its RegisterHealth method explicitly.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterHealth registers the health check route.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

// RegisterRoutes wires every Huma handler into api, given the shared
// service dependencies.
func RegisterRoutes(api huma.API, svc *Services) {
	NewAPIHandler(svc).RegisterHealth(api)
	NewInfoHandler(svc.DataDir, svc.DB != nil).RegisterRoutes(api)
	NewDBHandler(svc.DB).RegisterRoutes(api)
	NewCoverHandler().RegisterRoutes(api)
	NewOfflineHandler(svc.Offline).RegisterRoutes(api)
}
