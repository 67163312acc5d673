// Package illustration generates small JPEG illustrations for vocabulary
// terms using the OpenAI image API. Generated images are scaled down,
// re-encoded and cached on disk so a term is only ever generated once per
// model and size configuration.
package illustration
