// Package services implements the driving port interfaces.
// Services hold the client's logic: local validation before any network
// call, ledger bookkeeping and report polling. They reach the API and
// storage only through driven ports.
package services
