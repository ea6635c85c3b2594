// Package processor wires the configured text and image clients into the
// orchestrator and runs them for a single word, a batch file or the desktop
// window. Finished CLI results are printed as cards, JSON or YAML and their
// images exported to the output directory.
package processor
