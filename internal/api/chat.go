// ABOUTME: Chat turn call against POST /chat
// ABOUTME: Sends the new message plus prior transcript and returns the reply

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// HistoryMessage is one prior transcript entry sent with a chat turn.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply is the backend's answer to a chat turn. SourceURLs and
// SourceTitles are parallel lists of retrieval citations; IsGeneralChat
// marks replies that did not go through retrieval.
type ChatReply struct {
	Response      string   `json:"response"`
	SourceURLs    []string `json:"source_urls"`
	SourceTitles  []string `json:"source_titles"`
	IsGeneralChat bool     `json:"is_general_chat"`
}

type chatRequest struct {
	Message string           `json:"message"`
	History []HistoryMessage `json:"history"`
}

// Chat sends one chat turn: the user's new message plus the full prior
// transcript. The bearer token is required by the backend; a 401 is
// returned as ErrUnauthorized.
func (c *Client) Chat(ctx context.Context, message string, history []HistoryMessage) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	if history == nil {
		history = []HistoryMessage{}
	}

	var reply ChatReply
	err := c.doJSON(ctx, http.MethodPost, "/chat", chatRequest{
		Message: message,
		History: history,
	}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}
