// Package aibackend is the HTTP client for the Python inference service. The
// service runs on scale-to-zero infrastructure, so the client tolerates long
// cold starts and reports deadline overruns as retryable timeouts.
package aibackend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"resty.dev/v3"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/metrics"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/httpclients"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

const wakeUpMessage = "The AI service is waking up, please retry in a moment"

// Client talks to the Python inference backend.
type Client struct {
	http *resty.Client
}

var (
	_ conversation.AIBackend = (*Client)(nil)
	_ translation.Backend    = (*Client)(nil)
	_ document.Backend       = (*Client)(nil)
)

func NewClient(cfg *config.Config) *Client {
	http := httpclients.NewClient("ai-backend").
		SetBaseURL(cfg.AIBackendURL).
		SetTimeout(cfg.AIBackendTimeout)
	return &Client{http: http}
}

func (c *Client) Chat(ctx context.Context, prompt string) (conversation.BackendReply, error) {
	raw, err := c.post(ctx, "/api/v1/chat", map[string]any{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	return conversation.ClassifyReply(raw), nil
}

func (c *Client) AgentChat(ctx context.Context, message string, sessionID, documentID *string) (conversation.BackendReply, error) {
	body := map[string]any{"message": message}
	if sessionID != nil {
		body["session_id"] = *sessionID
	}
	if documentID != nil {
		body["document_id"] = *documentID
	}

	raw, err := c.post(ctx, "/api/v1/agent/chat", body)
	if err != nil {
		return nil, err
	}
	return conversation.ClassifyReply(raw), nil
}

func (c *Client) AgentUploadAndChat(ctx context.Context, file conversation.FileUpload, initialMessage string, sessionID *string, inputLanguage, outputLanguage *string) (conversation.BackendReply, error) {
	fields := map[string]string{"initial_message": initialMessage}
	if sessionID != nil {
		fields["session_id"] = *sessionID
	}
	if inputLanguage != nil {
		fields["input_language"] = *inputLanguage
	}
	if outputLanguage != nil {
		fields["output_language"] = *outputLanguage
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", file.Filename, bytes.NewReader(file.Data)).
		SetMultipartFormData(fields).
		Post("/api/v1/agent/upload-and-chat")
	if err != nil {
		metrics.BackendCallsTotal.WithLabelValues("upload-and-chat", "error").Inc()
		return nil, c.wrapTransportError(ctx, "upload-and-chat", err)
	}
	if res.IsError() {
		metrics.BackendCallsTotal.WithLabelValues("upload-and-chat", "error").Inc()
		return nil, c.upstreamError(ctx, "upload-and-chat", res)
	}
	metrics.BackendCallsTotal.WithLabelValues("upload-and-chat", "ok").Inc()
	return conversation.ClassifyReply(res.Bytes()), nil
}

func (c *Client) DetectLanguage(ctx context.Context, text string) (*translation.DetectedLanguage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("text", text).
		Post("/api/v1/agent/detect-language")
	if err != nil {
		return nil, c.wrapTransportError(ctx, "detect-language", err)
	}
	if res.IsError() {
		return nil, c.upstreamError(ctx, "detect-language", res)
	}

	var detected translation.DetectedLanguage
	if err := json.Unmarshal(res.Bytes(), &detected); err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"unexpected language detection payload",
			err,
			"f708192a-3b4c-45d6-4657-68798a9bacbd",
		)
	}
	return &detected, nil
}

func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	raw, err := c.post(ctx, "/api/v1/translate", map[string]any{
		"text":        text,
		"source_lang": sourceLang,
		"target_lang": targetLang,
	})
	if err != nil {
		return "", err
	}

	// Older backend builds name the field differently.
	var payload struct {
		TranslatedText string `json:"translated_text"`
		Translation    string `json:"translation"`
		Result         string `json:"result"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"unexpected translation payload",
			err,
			"08192a3b-4c5d-46e7-5768-798a9bacbdce",
		)
	}
	switch {
	case payload.TranslatedText != "":
		return payload.TranslatedText, nil
	case payload.Translation != "":
		return payload.Translation, nil
	case payload.Result != "":
		return payload.Result, nil
	}
	return "", platformerrors.NewError(
		ctx,
		platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		"translation payload carried no text",
		nil,
		"192a3b4c-5d6e-47f8-6879-8a9bacbdcedf",
	)
}

func (c *Client) GenerateDocument(ctx context.Context, templateName string, data map[string]any) (*document.GeneratedDocument, error) {
	raw, err := c.post(ctx, "/api/v1/generate-document", map[string]any{
		"template_name": templateName,
		"data":          data,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Content  string `json:"content"`
		Document string `json:"document"`
		FileURL  string `json:"file_url"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"unexpected document generation payload",
			err,
			"2a3b4c5d-6e7f-4809-798a-9bacbdcedfe1",
		)
	}

	generated := &document.GeneratedDocument{Content: payload.Content, FileURL: payload.FileURL}
	if generated.Content == "" {
		generated.Content = payload.Document
	}
	return generated, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		metrics.BackendCallsTotal.WithLabelValues(path, "error").Inc()
		return nil, c.wrapTransportError(ctx, path, err)
	}
	if res.IsError() {
		metrics.BackendCallsTotal.WithLabelValues(path, "error").Inc()
		return nil, c.upstreamError(ctx, path, res)
	}
	metrics.BackendCallsTotal.WithLabelValues(path, "ok").Inc()
	return json.RawMessage(res.Bytes()), nil
}

// wrapTransportError maps deadline overruns to a retryable timeout; the
// backend scales to zero and can take most of the request budget to boot.
func (c *Client) wrapTransportError(ctx context.Context, operation string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTimeout,
			wakeUpMessage,
			err,
			"3b4c5d6e-7f80-491a-8a9b-acbdcedfe0f2",
		)
	}
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		fmt.Sprintf("AI backend request failed: %s", operation),
		err,
		"4c5d6e7f-8091-4a2b-9bac-bdcedfe0f103",
	)
}

func (c *Client) upstreamError(ctx context.Context, operation string, res *resty.Response) error {
	return platformerrors.NewErrorWithContext(
		ctx,
		platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		fmt.Sprintf("AI backend returned %d: %s", res.StatusCode(), operation),
		nil,
		"5d6e7f80-91a2-4b3c-acbd-cedfe0f10214",
		map[string]any{"status": res.StatusCode()},
	)
}
