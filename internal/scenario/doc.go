// Package scenario tracks the lifecycle of named scenarios and serialises
// their state transitions.
//
// A scenario moves through a fixed graph:
//
//	idle -> waiting -> satisfied -> allowed -> completed
//	                            \-> denied
//
// denied and completed are terminal. The graph lives in graph.go and is the
// only copy; remote components fetch it over the API.
//
// # Components
//
//   - Store: durable backend with a single conditional write
//     (CompareAndSwap). SQLiteStore, RedisStore and MemoryStore implement it.
//   - Registry: cached (state, version) per scenario plus TryCommit.
//   - Coordinator: ProposeTransition, which validates a proposal, commits it
//     with optimistic concurrency and hands the result to observers and a
//     StageNotifier.
//
// # Concurrency
//
// Each scenario carries a version that increases by one per commit. A
// commit succeeds only if the stored version still equals the version the
// proposer read, so two proposals racing on one version produce exactly one
// commit. The loser re-reads and retries with jittered backoff until
// Options.MaxAttempts is spent, then fails with ErrContention.
//
// # Usage
//
//	store := scenario.NewSQLiteStore(db)
//	registry := scenario.NewRegistry(store)
//	registry.SetLogger(log)
//
//	coord := scenario.NewCoordinator(registry, scenario.Options{MaxAttempts: 5}, log)
//	coord.SetNotifier(stageNotifier)
//
//	res, err := coord.ProposeTransition(ctx, scenario.Proposal{
//	    ResourceName:    "temp-alert",
//	    TargetState:     scenario.StateWaiting,
//	    SourceComponent: "ConditionEvaluator",
//	})
//
// # Idempotence
//
// A proposal may carry its own TransitionID. Re-sending a committed id
// returns the original result with Replayed set and writes nothing.
package scenario
