package logger

import "strings"

var defaultKeyOrder = []string{
	"ts", "level", "component", "event", "status", "rid",
	"update_id", "chat_id", "user_id", "handler",
	"duration_ms", "err", "err_code",
}

var allowedStatus = map[string]string{
	"ok":           "ok",
	"fail":         "fail",
	"skip":         "skip",
	"retry":        "retry",
	"rate_limited": "rate_limited",
	"cancelled":    "cancelled",
}

func normalizeLevel(level string) string {
	if level == "" {
		return "INFO"
	}
	return strings.ToUpper(level)
}

func normalizeStatus(status string) (string, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	mapped, ok := allowedStatus[status]
	return mapped, ok
}
