package taskboard

import "fmt"

// Storage key helpers
//
// The board persists two logical keys. Backends that share a server between
// several boards (Redis) namespace them by instance name.
//
// Key pattern: taskboard:{instance_name}:{key}
// Channel pattern: taskboard:{instance_name}:{event_type}_events

const (
	// AppStateKey holds the combined {projects, auth} snapshot.
	AppStateKey = "appState"

	// SessionKey holds a standalone serialized User for fast session restore.
	SessionKey = "authCurrentUser"
)

// NamespacedKey returns the backend key for a logical key.
// Pattern: taskboard:{instance_name}:{key}
func NamespacedKey(instanceName, key string) string {
	return fmt.Sprintf("taskboard:%s:%s", instanceName, key)
}

// KeyPrefix returns the prefix shared by every key of an instance.
// Pattern: taskboard:{instance_name}:
func KeyPrefix(instanceName string) string {
	return fmt.Sprintf("taskboard:%s:", instanceName)
}

// StateEventsChannel returns the Pub/Sub channel name for state-change events.
// Pattern: taskboard:{instance_name}:state_events
func StateEventsChannel(instanceName string) string {
	return fmt.Sprintf("taskboard:%s:state_events", instanceName)
}
