// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ReportAPI: Submits reports and fetches their status from the Surmado API
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReportLedger: Local record of submissions. Without it, history and
//     token lookup by report id are unavailable.
//   - ConfigStore: Persistent CLI configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
