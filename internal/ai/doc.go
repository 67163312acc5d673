// Package ai translates picked words and phrases into the user's
// study language through pluggable text-completion providers. OpenAI
// and Gemini backends are supported, optionally chained with a
// fallback.
package ai
