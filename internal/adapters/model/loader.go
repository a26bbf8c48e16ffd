package model

import (
	"os"

	apperrors "github.com/zatekoja/botornot/pkg/errors"
)

// Load reads, decodes and validates the model artifact at path.
// Every failure is a startup error: the process must not serve without a model.
func Load(path string) (*TreeEnsemble, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStartupError("failed to read model artifact "+path, err)
	}

	artifact, err := decodeArtifact(path, payload)
	if err != nil {
		return nil, apperrors.NewStartupError("corrupt model artifact "+path, err)
	}

	if err := artifact.validate(); err != nil {
		return nil, apperrors.NewStartupError("incompatible model artifact "+path, err)
	}

	return newTreeEnsemble(artifact), nil
}
