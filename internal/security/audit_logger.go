package security

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog/log"
)

// AuditLogger logs agent runs with hashed identifiers so questions and
// API keys never appear verbatim in the log stream.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogAgentRun records one completed (or failed) agent run.
func (a *AuditLogger) LogAgentRun(
	question, apiKey string,
	toolsUsed []string,
	rounds int,
	executionTimeMs int64,
	success bool,
	errMsg string,
) {
	if !a.enabled {
		return
	}

	evt := log.Info().
		Str("event", "agent_audit").
		Str("question_hash", hashStr(question)[:16]).
		Str("api_key_hash", hashStr(apiKey)[:16]).
		Strs("tools_used", toolsUsed).
		Int("rounds", rounds).
		Int64("execution_time_ms", executionTimeMs).
		Bool("success", success)

	if errMsg != "" {
		evt = evt.Str("error", errMsg)
	}
	evt.Msg("audit")
}

func hashStr(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
