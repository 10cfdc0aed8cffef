// Package history persists conversion runs and their per-file outcomes in a
// SQLite database so earlier runs can be listed and inspected.
//
// A run is opened with BeginRun, receives one RecordConversion call per file,
// and is closed with FinishRun. Run identifiers are random UUIDs.
package history
