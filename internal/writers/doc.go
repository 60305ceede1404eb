// Package writers turns run reports into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (text, ASCII map, JSON, JSONL, FASTA, CSV).
//   • The engine stays domain-only; internal/appcore only builds reports.
//   • JSON goes through pkg/api (v1) for a stable wire format.
package writers
