// Package taskrunner hosts the shared abstractions for building and executing
// pubx tasks. It exposes the `Executor` interface plus helpers (`Factory`,
// `Resolve`) so CLI packages can inject Dependencies once and obtain a runner,
// while unit tests can swap in fakes. This keeps sequencing logic in
// `internal/tasks` reusable without wiring duplication.
package taskrunner
