// Package models lists the OpenAI models that can translate mod files with
// the current API key.
package models
