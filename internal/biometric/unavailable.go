package biometric

import "context"

const reasonUnsupported = "not available on this platform"

// Unavailable is the provider used when no native backend exists.
type Unavailable struct{}

func (Unavailable) Name() string    { return "none" }
func (Unavailable) Supported() bool { return false }

func (Unavailable) Probe(context.Context) (ProbeReport, error) {
	return ProbeReport{Reason: reasonUnsupported}, nil
}

func (Unavailable) Prompt(context.Context, PromptRequest) error {
	return errUnsupported
}
