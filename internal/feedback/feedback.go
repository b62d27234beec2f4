// Package feedback validates user feedback and forwards it to a Telegram chat.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
)

const (
	MaxLength      = 2000
	DefaultBaseURL = "https://api.telegram.org"
)

var (
	ErrMissingConfig = apperr.New(apperr.CodeConfig, "Internal server error")
	ErrRequired      = apperr.New(apperr.CodeInvalidInput, "Feedback text is required")
	ErrTooLong       = apperr.New(apperr.CodeInvalidInput, "Feedback text must be %d characters or less", MaxLength)
)

// ClientIP resolves the caller from proxy headers: the first X-Forwarded-For
// entry, then X-Real-IP, then "unknown".
func ClientIP(h http.Header) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(h.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}

// Validate checks the feedback text. Length is counted in characters.
func Validate(text string) error {
	if text == "" {
		return ErrRequired
	}
	if utf8.RuneCountInString(text) > MaxLength {
		return ErrTooLong
	}
	return nil
}

// Message formats the chat message.
func Message(text, email, ip string) string {
	var b strings.Builder
	b.WriteString("*[Memezzz.com]*\n\n")
	b.WriteString(text)
	if email != "" {
		b.WriteString("\n\nFrom: ")
		b.WriteString(email)
	}
	b.WriteString("\nIP Address: ")
	b.WriteString(ip)
	return b.String()
}

// Telegram sends messages through the Bot API sendMessage method.
type Telegram struct {
	Token   string
	ChatID  string
	BaseURL string
	client  *http.Client
}

func NewTelegram(token, chatID, baseURL string) *Telegram {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Telegram{
		Token:   token,
		ChatID:  chatID,
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether both the bot token and the chat id are set.
func (t *Telegram) Configured() bool {
	return t != nil && t.Token != "" && t.ChatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send posts text to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if !t.Configured() {
		return ErrMissingConfig
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: t.ChatID, Text: text, ParseMode: "Markdown"})
	if err != nil {
		return fmt.Errorf("telegram marshal: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "Failed to send feedback")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperr.Wrap(apperr.CodeInternal,
			fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, body),
			"Failed to send feedback")
	}
	return nil
}
