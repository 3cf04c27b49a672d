package ai

import "errors"

// ErrEmptyCompletion the provider answered without any choice.
var ErrEmptyCompletion = errors.New("ai completion has no choices")
