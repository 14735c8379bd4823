// Package googleapis combines the Google Tasks and Google Calendar clients
// into a single service.Service sharing one OAuth token.
package googleapis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"triage/internal/backend/googlecalendar"
	"triage/internal/backend/googletasks"
	"triage/internal/config"
	"triage/internal/service"
)

// Scopes are the OAuth scopes requested at login.
var Scopes = []string{googletasks.Scope, googlecalendar.Scope}

// Backend implements service.Service on top of the two API clients.
type Backend struct {
	service.TaskService
	service.CalendarService
}

var _ service.Service = (*Backend)(nil)

// OAuthConfig loads oauth_client.json with the scopes triage needs.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads the stored OAuth token.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// New creates the backend. Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Backend, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Token source refreshes automatically
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	opt := option.WithHTTPClient(httpClient)

	tasksClient, err := googletasks.New(ctx, cfg.Log, opt)
	if err != nil {
		return nil, err
	}
	calendarClient, err := googlecalendar.New(ctx, cfg.Settings.CalendarID, cfg.Settings.Location, cfg.Log, opt)
	if err != nil {
		return nil, err
	}
	return &Backend{TaskService: tasksClient, CalendarService: calendarClient}, nil
}
