// Package feed abstracts the sources a weekly positioning reading can
// come from: the regulator's published report text, a commercial dataset
// API, or a local file. Sources register builders here and are assembled
// from YAML configuration.
package feed

import (
	"context"

	"marketmood/pkg/cot"
)

// Provider exposes source-agnostic access to the latest weekly reading
// for the configured instrument.
type Provider interface {
	// Name identifies the provider instance in logs and artifacts.
	Name() string
	// FetchLatest retrieves the most recent positioning reading. One
	// fetch per run; there is no retry below this interface.
	FetchLatest(ctx context.Context) (*cot.Record, error)
}

// CredentialAware is implemented by providers that need an access
// credential. Callers use it to pick a fallback strategy before fetching
// rather than discovering a missing key mid-run.
type CredentialAware interface {
	HasCredential() bool
}
