package api

import (
	"github.com/rpupo63/portfolio-admin/database"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rpupo63/portfolio-admin/notify"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/session"
)

// Backend bundles what the handlers call into. Database is nil when the
// sync journal is disabled.
type Backend struct {
	Gateway         *services.Gateway
	Source          *services.Source
	Parser          *session.Parser
	Normalizer      *normalize.Normalizer
	Database        *database.Database
	AcceptedOrigins []string
	Port            string
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// MutationResponse answers every create, edit, delete and mapping call.
type MutationResponse struct {
	Message       string                `json:"message"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
	Data          any                   `json:"data,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Journal       string `json:"journal"`
}
