// Package taskboard provides type-safe Go definitions, the persisted snapshot
// format and the storage adapters for the taskboard project/task manager.
//
// # Overview
//
// A board holds registered users, the current session, and a list of
// projects, each owning an ordered list of tasks. The in-memory stores that
// mutate this state live in internal packages; this package defines the data
// they exchange and the Storage interface they persist through.
//
// # Persistence
//
// The whole board is written as one JSON document under AppStateKey:
//
//	{
//	  "projects": {"items": [...], "selectedProject": "<id>" | null},
//	  "auth":     {"users": [...], "currentUser": {...} | null}
//	}
//
// A second key, SessionKey, holds the current user on its own so a session
// can be restored without decoding the snapshot.
//
// # Storage Backends
//
// MemoryStorage keeps items in a map. Client stores them in Redis under
// taskboard:{instance_name}:{key} and publishes a StateEvent on
// taskboard:{instance_name}:state_events after every write, so other
// processes can follow changes with SubscribeStateEvents.
//
// # Usage Example
//
//	client, err := taskboard.NewClient(&redis.Options{Addr: "localhost:6379"}, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	raw, err := client.GetItem(ctx, taskboard.AppStateKey)
//	if taskboard.IsNotFound(err) {
//		// nothing persisted yet
//	}
//	state, err := taskboard.DecodeAppState(raw)
package taskboard
