// Package autosuggest defines the suggestion collaborators consumed by the
// editing core: fish-style ghost-text suggestions computed from history, and
// an AI-backed suggester. Suggesters are advisory and best-effort; a failed
// lookup simply yields no suggestion.
package autosuggest
