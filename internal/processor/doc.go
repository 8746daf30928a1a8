// Package processor contains the batch logic for translating a mod. It
// discovers the eligible XML files, plans one unit per file and language,
// runs the first unit on its own so the prompt cache is warm, dispatches the
// rest concurrently and summarizes the outcome. This package serves as the
// main coordinator between discovery, the translator and the run report.
package processor
