// Package batch finds the mod files that need translating and plans one
// translation unit per file and target language.
package batch
