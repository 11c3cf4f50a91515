package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orzutravel/api/internal/domain"
)

const defaultBaseURL = "https://api.telegram.org"

// Config holds Telegram Bot API configuration
type Config struct {
	BotToken string
	ChatID   string
	BaseURL  string // overridable for tests; defaults to the public API
}

// Client is a thin Telegram Bot API client. It is used both as a media
// host (upload endpoints + getFile URL resolution) and as a notification
// channel (sendMessage). Every call is an irreversible external side
// effect; there is no retry and no idempotency key.
type Client struct {
	config     Config
	httpClient *http.Client
}

// apiResponse is the provider's JSON envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// message is the subset of a Telegram message we care about after an upload.
// Photo messages carry an array of size variants; video messages a single file.
type message struct {
	Photo []fileRef `json:"photo"`
	Video *fileRef  `json:"video"`
}

type fileRef struct {
	FileID string `json:"file_id"`
}

type fileInfo struct {
	FilePath string `json:"file_path"`
}

// NewClient creates a new Telegram client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			// Large videos take a while on slow uplinks.
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.config.BaseURL, c.config.BotToken, method)
}

func (c *Client) fileURL(path string) string {
	return fmt.Sprintf("%s/file/bot%s/%s", c.config.BaseURL, c.config.BotToken, path)
}

// resolveFileURL turns a provider file id into a fetchable URL via getFile.
// Resolution failure yields an empty URL rather than an error: the upload
// itself already succeeded and the file id is still stored.
func (c *Client) resolveFileURL(ctx context.Context, fileID string) string {
	endpoint := c.methodURL("getFile") + "?file_id=" + url.QueryEscape(fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ""
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[telegram] getFile failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil || !api.OK {
		return ""
	}
	var info fileInfo
	if err := json.Unmarshal(api.Result, &info); err != nil || info.FilePath == "" {
		return ""
	}
	return c.fileURL(info.FilePath)
}

// UploadSingle uploads one file through the type-appropriate endpoint:
// photo -> sendPhoto, video -> sendVideo. For photos the provider returns
// multiple size variants and the last (largest) one is selected.
func (c *Client) UploadSingle(ctx context.Context, file domain.MediaFile) (domain.MediaItem, error) {
	mediaType := domain.MediaTypeOf(file.ContentType)
	endpoint := "sendPhoto"
	field := "photo"
	if mediaType == domain.MediaVideo {
		endpoint = "sendVideo"
		field = "video"
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", c.config.ChatID); err != nil {
		return domain.MediaItem{}, fmt.Errorf("failed to build form: %w", err)
	}
	part, err := w.CreateFormFile(field, file.Name)
	if err != nil {
		return domain.MediaItem{}, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return domain.MediaItem{}, fmt.Errorf("failed to build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return domain.MediaItem{}, fmt.Errorf("failed to build form: %w", err)
	}

	msg, err := c.send(ctx, endpoint, &body, w.FormDataContentType())
	if err != nil {
		return domain.MediaItem{}, err
	}

	fileID := msg.fileID()
	if fileID == "" {
		return domain.MediaItem{}, fmt.Errorf("%w: no file_id in response", domain.ErrUploadFailed)
	}

	return domain.MediaItem{
		Type:   mediaType,
		FileID: fileID,
		URL:    c.resolveFileURL(ctx, fileID),
	}, nil
}

// uploadGroup uploads 2+ files as a single sendMediaGroup request (mixed
// photo/video). The provider's response ordering is iterated as-is; input
// order is not re-asserted. A group failure aborts the whole batch.
func (c *Client) uploadGroup(ctx context.Context, files []domain.MediaFile) ([]domain.MediaItem, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", c.config.ChatID); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	type groupEntry struct {
		Type  string `json:"type"`
		Media string `json:"media"`
	}
	entries := make([]groupEntry, 0, len(files))
	for i, file := range files {
		key := fmt.Sprintf("media%d", i)
		part, err := w.CreateFormFile(key, file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
		entries = append(entries, groupEntry{
			Type:  string(domain.MediaTypeOf(file.ContentType)),
			Media: "attach://" + key,
		})
	}

	mediaJSON, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal media group: %w", err)
	}
	if err := w.WriteField("media", string(mediaJSON)); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	msgs, err := c.sendGroup(ctx, &body, w.FormDataContentType())
	if err != nil {
		return nil, err
	}

	out := make([]domain.MediaItem, 0, len(msgs))
	for _, msg := range msgs {
		fileID := msg.fileID()
		if fileID == "" {
			continue
		}
		mediaType := domain.MediaPhoto
		if msg.Video != nil {
			mediaType = domain.MediaVideo
		}
		out = append(out, domain.MediaItem{
			Type:   mediaType,
			FileID: fileID,
			URL:    c.resolveFileURL(ctx, fileID),
		})
	}
	return out, nil
}

// UploadMedia is the public upload entry point. Zero files yield an empty
// result without any network calls; one file goes through the single-file
// endpoints; two or more are submitted as one media group.
func (c *Client) UploadMedia(ctx context.Context, files []domain.MediaFile) ([]domain.MediaItem, error) {
	switch len(files) {
	case 0:
		return []domain.MediaItem{}, nil
	case 1:
		item, err := c.UploadSingle(ctx, files[0])
		if err != nil {
			return nil, err
		}
		return []domain.MediaItem{item}, nil
	default:
		return c.uploadGroup(ctx, files)
	}
}

// SendMessage posts a Markdown-formatted text message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    c.config.ChatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrNotificationFailed, resp.StatusCode)
	}
	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	if !api.OK {
		return fmt.Errorf("%w: %s", domain.ErrNotificationFailed, api.Description)
	}
	return nil
}

// send posts a multipart request expecting a single message result.
func (c *Client) send(ctx context.Context, method string, body io.Reader, contentType string) (*message, error) {
	api, err := c.post(ctx, method, body, contentType)
	if err != nil {
		return nil, err
	}
	var msg message
	if err := json.Unmarshal(api.Result, &msg); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", domain.ErrUploadFailed, err)
	}
	return &msg, nil
}

// sendGroup posts a multipart request expecting an array of messages.
func (c *Client) sendGroup(ctx context.Context, body io.Reader, contentType string) ([]message, error) {
	api, err := c.post(ctx, "sendMediaGroup", body, contentType)
	if err != nil {
		return nil, err
	}
	var msgs []message
	if err := json.Unmarshal(api.Result, &msgs); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", domain.ErrUploadFailed, err)
	}
	return msgs, nil
}

func (c *Client) post(ctx context.Context, method string, body io.Reader, contentType string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrUploadFailed, err)
	}

	log.Printf("[telegram] %s -> %d", method, resp.StatusCode)

	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", domain.ErrUploadFailed, err)
	}
	if !api.OK {
		desc := api.Description
		if desc == "" {
			desc = strings.TrimSpace(string(respBody))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUploadFailed, desc)
	}
	return &api, nil
}

// fileID picks the provider file id of a message. Photo messages carry
// size variants; the last one is the largest.
func (m *message) fileID() string {
	if len(m.Photo) > 0 {
		return m.Photo[len(m.Photo)-1].FileID
	}
	if m.Video != nil {
		return m.Video.FileID
	}
	return ""
}
