// Package pipeline names the per-file stages of a cocomig run and carries
// their progress events to the terminal UI and the timing report.
package pipeline
