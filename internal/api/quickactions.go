// ABOUTME: Quick-action CRUD calls under /admin/quick-actions
// ABOUTME: Server-owned prompt buttons read by the chat view, managed by admins

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// QuickActionID accepts either a string or numeric id on the wire.
type QuickActionID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *QuickActionID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = QuickActionID(s)
		return nil
	}
	*id = QuickActionID(strings.Trim(string(data), `"`))
	return nil
}

// QuickAction is a predefined prompt shown in the chat menu. Selecting one
// injects Message as if the user had typed it.
type QuickAction struct {
	ID          QuickActionID `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Message     string        `json:"message"`
	Icon        string        `json:"icon"`
}

// QuickActionInput is the client-supplied portion of a quick action.
type QuickActionInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Icon        string `json:"icon"`
}

// ListQuickActions returns the full quick-action collection. The token is
// attached when present; the chat view may call this before login.
func (c *Client) ListQuickActions(ctx context.Context) ([]QuickAction, error) {
	var resp struct {
		QuickActions []QuickAction `json:"quick_actions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/quick-actions", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing quick actions: %w", err)
	}
	return resp.QuickActions, nil
}

// CreateQuickAction adds a quick action and returns the created record.
func (c *Client) CreateQuickAction(ctx context.Context, input QuickActionInput) (*QuickAction, error) {
	if err := c.validateStruct(input); err != nil {
		return nil, err
	}
	var created QuickAction
	if err := c.doJSON(ctx, http.MethodPost, "/admin/quick-actions", input, &created); err != nil {
		return nil, fmt.Errorf("creating quick action: %w", err)
	}
	return &created, nil
}

// UpdateQuickAction replaces the quick action with the given ID and returns
// the updated record.
func (c *Client) UpdateQuickAction(ctx context.Context, id string, input QuickActionInput) (*QuickAction, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if err := c.validateStruct(input); err != nil {
		return nil, err
	}
	var updated QuickAction
	if err := c.doJSON(ctx, http.MethodPut, "/admin/quick-actions/"+id, input, &updated); err != nil {
		return nil, fmt.Errorf("updating quick action: %w", err)
	}
	return &updated, nil
}

// DeleteQuickAction removes the quick action with the given ID.
func (c *Client) DeleteQuickAction(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/admin/quick-actions/"+id, nil, nil); err != nil {
		return fmt.Errorf("deleting quick action: %w", err)
	}
	return nil
}
