package application

import (
	"math/rand/v2"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

// UniformStepPicker draws uniformly from the closed range.
type UniformStepPicker struct{}

var _ ports.StepPicker = UniformStepPicker{}

func (UniformStepPicker) Pick(r domain.StepRange) int {
	if r.High <= r.Low {
		return r.Low
	}
	return r.Low + rand.IntN(r.High-r.Low+1)
}
