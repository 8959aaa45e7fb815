// Package diag defines the core diagnostic model shared by all front-end phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer, the config analysis, and the resource analysis.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration and
// transport live in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//     Ranges group by producer: 1000 lexical, 3000 resource analysis, 4000
//     configuration, 5000 I/O.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "first
// aggregation defined here") rather than repeating the diagnostic message.
//
// # Severity policy
//
// The two producing phases treat errors differently, and the model supports
// both: lexical errors are fatal — the lexer reports one Error and stops
// producing tokens — while resource and config analysis accumulate Errors and
// keep walking so one run surfaces every problem. Bag.Ok() is the gate the
// driver checks before letting the next phase run.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. A phase
// constructs a ReportBuilder via NewReportBuilder (or the helper functions
// ReportError/ReportWarning/ReportInfo) and chains WithNote before calling
// Emit. When no additional metadata is needed, phases may call
// Reporter.Report(...) directly. For convenience, diag.BagReporter aggregates
// diagnostics into a Bag, which supports sorting, deduplication, and merging
// across files.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics into pretty/json formats.
//   - internal/driver: coordinates bag collection per file and transports
//     diagnostic data to CLI commands.
//
// Keep the data model deterministic: any new fields should avoid side effects,
// so the CLI and future tooling can safely serialise diagnostics for caching
// and testing.
package diag
