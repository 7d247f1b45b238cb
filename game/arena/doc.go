// Package arena implements the core state of a dodgeball session: the
// entity registry, the lobby state machine, the match session, and the
// starting-orientation assigner.
//
// The arena package implements:
//   - Registry: authoritative keyed store of players and balls with
//     process-lifetime monotonic IDs
//   - Lobby transitions (SetName, SetTeam, SetReady) with the
//     Unset -> Named -> TeamSelected -> Ready progression enforced
//   - Match: in-session flag, per-team live counters, end detection,
//     and the full lobby reset after game-over
//   - ApplyStartingLayout: deterministic placement of players and balls
//     at match start
//
// Architecture:
//
// Nothing in this package performs I/O or locking. All functions are plain
// synchronous mutations over the registry; the service layer serializes
// access and turns transition results into broadcasts. That keeps every
// rule (team balance, readiness quorum, live counts, end-of-match) directly
// testable without a transport.
package arena
