package domain

import "strings"

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionRefreshed = "refreshed"
	ActionErrored   = "errored"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionCleared   = "cleared"
	ActionSnapshot  = "snapshot"

	// ActionUnauthorized tells browsers the token was rejected and where to sign in again.
	ActionUnauthorized = "unauthorized"
)

// CustomTopic returns the canonical "<entity>.<action>" topic, or "" when either part is blank.
func CustomTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

// SplitTopic is the inverse of CustomTopic. The action is the text after the last dot.
func SplitTopic(topic string) (entity, action string) {
	idx := strings.LastIndex(topic, ".")
	if idx <= 0 || idx == len(topic)-1 {
		return strings.TrimSpace(topic), ""
	}
	return strings.TrimSpace(topic[:idx]), strings.TrimSpace(topic[idx+1:])
}
