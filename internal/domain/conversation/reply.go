package conversation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ReplyVariant tags the shape of a backend reply.
type ReplyVariant string

const (
	VariantPlainChat     ReplyVariant = "plain_chat"
	VariantAgentChat     ReplyVariant = "agent_chat"
	VariantUploadAndChat ReplyVariant = "upload_and_chat"
)

// fallbackReplyText is persisted when no recognizable answer text can be
// pulled out of a backend reply. Normalization never fails a request over a
// malformed payload.
const fallbackReplyText = "AI response received but content could not be extracted."

// BackendReply is a classified inference reply. Raw returns the exact bytes
// received from the backend so replies can be cached and re-classified later.
type BackendReply interface {
	Variant() ReplyVariant
	Raw() json.RawMessage
	fieldMap() map[string]any
}

type replyPayload struct {
	raw    json.RawMessage
	fields map[string]any
}

func (p replyPayload) Raw() json.RawMessage        { return p.raw }
func (p replyPayload) fieldMap() map[string]any    { return p.fields }
func (p replyPayload) stringField(k string) string { s, _ := p.fields[k].(string); return s }

// PlainChatReply is a single-shot chat completion.
type PlainChatReply struct{ replyPayload }

func (PlainChatReply) Variant() ReplyVariant { return VariantPlainChat }

// AgentChatReply is an agent-pipeline turn carrying session affinity.
type AgentChatReply struct{ replyPayload }

func (AgentChatReply) Variant() ReplyVariant { return VariantAgentChat }

func (r AgentChatReply) SessionID() string { return r.stringField("session_id") }

// UploadAndChatReply is the first agent turn of a document upload. It binds
// both a session and a document to the conversation.
type UploadAndChatReply struct{ replyPayload }

func (UploadAndChatReply) Variant() ReplyVariant { return VariantUploadAndChat }

func (r UploadAndChatReply) SessionID() string    { return r.stringField("session_id") }
func (r UploadAndChatReply) DocumentID() string   { return r.stringField("document_id") }
func (r UploadAndChatReply) DocumentName() string { return r.stringField("document_name") }

// ClassifyReply inspects a raw backend payload and tags it with its variant.
// Discrimination happens here, at the call boundary; nothing downstream
// branches on raw payload keys. Unparseable payloads classify as plain chat
// with an empty field map so normalization can still produce a placeholder.
func ClassifyReply(raw []byte) BackendReply {
	payload := replyPayload{raw: json.RawMessage(raw)}
	if err := json.Unmarshal(raw, &payload.fields); err != nil {
		payload.fields = map[string]any{}
	}

	docID, _ := payload.fields["document_id"].(string)
	sessionID, _ := payload.fields["session_id"].(string)
	_, hasAgentResponse := payload.fields["agent_response"]

	switch {
	case docID != "" && hasAgentResponse:
		return UploadAndChatReply{payload}
	case sessionID != "" && docID == "":
		return AgentChatReply{payload}
	default:
		return PlainChatReply{payload}
	}
}

// NormalizedReply is the uniform internal shape every backend variant
// reduces to before persistence.
type NormalizedReply struct {
	Content      string
	SessionID    *string
	DocumentID   *string
	DocumentName *string
	Metadata     *MessageMetadata
}

// Normalize reduces a classified reply to displayable text plus structured
// metadata. It always produces usable content.
func Normalize(reply BackendReply) NormalizedReply {
	fields := reply.fieldMap()

	var normalized NormalizedReply
	switch reply.Variant() {
	case VariantUploadAndChat:
		normalized.Content = extractText(fields, "agent_response", "response")
		normalized.SessionID = optionalString(fields, "session_id")
		normalized.DocumentID = optionalString(fields, "document_id")
		normalized.DocumentName = optionalString(fields, "document_name", "filename")
	case VariantAgentChat:
		normalized.Content = extractText(fields, "response", "answer", "message")
		normalized.SessionID = optionalString(fields, "session_id")
	default:
		normalized.Content = extractText(fields, "response", "message", "text")
	}

	normalized.Metadata = summarizeTools(fields)
	if normalized.DocumentID != nil {
		if normalized.Metadata == nil {
			normalized.Metadata = &MessageMetadata{}
		}
		normalized.Metadata.DocumentID = normalized.DocumentID
	}

	return normalized
}

// extractText walks the fallback chain: primary text fields, then the first
// intermediate step's result (plain string, nested answer with sources, or a
// JSON rendering of the step), then the placeholder.
func extractText(fields map[string]any, primaryKeys ...string) string {
	for _, key := range primaryKeys {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}

	steps, _ := fields["intermediate_steps"].([]any)
	if len(steps) > 0 {
		if step, ok := steps[0].(map[string]any); ok {
			if text := textFromStepResult(step["result"]); text != "" {
				return text
			}
		}
	}

	return fallbackReplyText
}

func textFromStepResult(result any) string {
	switch v := result.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case map[string]any:
		if answer, ok := v["answer"].(string); ok && strings.TrimSpace(answer) != "" {
			if sources := formatSources(v["sources"]); sources != "" {
				return answer + "\n\n**Sources:**\n" + sources
			}
			return answer
		}
		if response, ok := v["response"].(string); ok && strings.TrimSpace(response) != "" {
			return response
		}
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}
	return ""
}

func formatSources(sources any) string {
	switch v := sources.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		lines := make([]string, 0, len(v))
		for _, source := range v {
			lines = append(lines, fmt.Sprint(source))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// summarizeTools condenses the agent's retrieval trace into the persisted
// metadata shape. Returns nil when the reply carries no tool information.
func summarizeTools(fields map[string]any) *MessageMetadata {
	steps, _ := fields["intermediate_steps"].([]any)
	if len(steps) > 0 {
		usages := make([]ToolUsage, 0, len(steps))
		var (
			totalQueryTime float64
			sawQueryTime   bool
			totalChunks    int
			sawTotalChunks bool
		)
		for _, raw := range steps {
			step, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			usage := ToolUsage{Tool: "unknown"}
			if tool, ok := step["tool"].(string); ok && tool != "" {
				usage.Tool = tool
			}
			// Telemetry lives on the step's result object, not the step
			// itself: {tool, result: {query_time, chunks_used, total_chunks}}.
			if result, ok := step["result"].(map[string]any); ok {
				if qt, ok := result["query_time"].(float64); ok {
					usage.QueryTime = &qt
					totalQueryTime += qt
					sawQueryTime = true
				}
				if cu, ok := result["chunks_used"].(float64); ok {
					chunks := int(cu)
					usage.ChunksUsed = &chunks
				}
				if tc, ok := result["total_chunks"].(float64); ok {
					chunks := int(tc)
					usage.TotalChunks = &chunks
					if chunks > totalChunks {
						totalChunks = chunks
					}
					sawTotalChunks = true
				}
			}
			usages = append(usages, usage)
		}
		if len(usages) == 0 {
			return nil
		}

		metadata := &MessageMetadata{ToolsUsed: usages}
		if sawQueryTime {
			rounded := math.Round(totalQueryTime*100) / 100
			metadata.TotalQueryTime = &rounded
		}
		if sawTotalChunks {
			metadata.TotalChunks = &totalChunks
		}
		return metadata
	}

	// Some pipeline versions only report bare tool names.
	if tools, ok := fields["tools_used"].([]any); ok && len(tools) > 0 {
		usages := make([]ToolUsage, 0, len(tools))
		for _, tool := range tools {
			if name, ok := tool.(string); ok && name != "" {
				usages = append(usages, ToolUsage{Tool: name})
			}
		}
		if len(usages) == 0 {
			return nil
		}
		return &MessageMetadata{ToolsUsed: usages}
	}

	return nil
}

func optionalString(fields map[string]any, keys ...string) *string {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}
