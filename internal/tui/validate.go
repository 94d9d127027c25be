// ABOUTME: Backend reachability check used by the setup wizard.
// ABOUTME: Lists a single post through the API gateway to prove the URL answers.
package tui

import (
	"context"
	"time"

	"github.com/2389-research/community/internal/api"
)

// validateTimeout bounds the setup check so a dead host fails quickly.
const validateTimeout = 10 * time.Second

// ValidateConnection confirms apiURL serves the board API.
// The context allows cancellation when the user quits during validation.
func ValidateConnection(ctx context.Context, apiURL string) error {
	client, err := api.NewClient(apiURL, api.WithTimeout(validateTimeout))
	if err != nil {
		return err
	}
	return client.Validate(ctx)
}
