package domain

// ============================================================
// Narrative Agent
// ============================================================

// AgentRequest is the payload sent to the analysis agent service. The
// Context field carries the serialized financial picture of the ledger
// so the agent can ground its answer in real numbers.
type AgentRequest struct {
	Query   string `json:"query"`
	Context string `json:"context,omitempty"`
}

// AgentResponse is the structured reply from the analysis agent.
type AgentResponse struct {
	Answer     string     `json:"answer"`
	Sources    []string   `json:"sources,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
	TokensUsed TokenUsage `json:"tokens_used"`
}

// TokenUsage tracks LLM token consumption for cost monitoring.
type TokenUsage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	EstimatedCostUsd float64 `json:"estimatedCostUsd,omitempty"`
}

// ============================================================
// Chat API: request/response between the caller and the backend
// ============================================================

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is what the chat endpoint returns to the caller.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// ChatMessage is one entry of the in-memory conversation history.
type ChatMessage struct {
	Role      string `json:"role"` // user or assistant
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// InsightsResponse is the narrative summary for GET /v1/insights.
type InsightsResponse struct {
	Insights string `json:"insights"`
}

// ============================================================
// Narrative Agent Metrics
// ============================================================

// AgentMetrics is the snapshot returned by GET /v1/metrics/agent:
// cumulative usage of the narrative LLM agent since process start.
type AgentMetrics struct {
	TotalRequests       int64   `json:"totalRequests"`
	ErrorRate           float64 `json:"errorRate"`
	AvgTokensPerRequest float64 `json:"avgTokensPerRequest"`
	EstimatedCostUSD    float64 `json:"estimatedCostUsd"`
	CacheHitRate        float64 `json:"cacheHitRate"`
	Period              string  `json:"period"`
}
