package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ChatTurn is one message of the conversation.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest carries the full conversation so far, newest turn last.
type ChatRequest struct {
	Messages []ChatTurn `json:"messages"`
}

// Validate requires a non-empty conversation.
func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Messages, validation.Required, validation.Length(1, 100)),
	)
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
