// Package diag defines the diagnostic model shared by all generator phases.
//
// A Diagnostic carries a Severity, a compact Code with a stable prefixed ID
// (DEP, IDN, IDX, CFG, AMB, EMT), the Subject it is about (callable, class or
// manifest path) and a short message. Typed errors raised by the overload
// model implement Coded so FromError keeps their code.
//
// Phases emit through a Reporter; BagReporter collects into a Bag, which
// supports limits, sorting and deduplication. FormatShort and Print render
// bags for tests and the CLI respectively.
package diag
