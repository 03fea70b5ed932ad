package border

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Job describes one border transform.
type Job struct {
	Input   string  `validate:"required"`
	Output  string  `validate:"required,nefield=Input"`
	Percent float64 `validate:"gte=0,lte=50"`
}

// Validate checks the job fields before any media tool runs.
func (j Job) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	return nil
}

// DefaultOutput names the output next to input: clip.mov becomes
// <prefix>clip.mp4.
func DefaultOutput(input, prefix string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), prefix+stem+".mp4")
}
