// Package observability provides event logging and metrics calculation for
// Daybook. It uses structured JSON Lines (JSONL) for event persistence and
// derives journal metrics on-demand from the event log.
package observability
