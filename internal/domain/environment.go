package domain

import "fmt"

// Environment selects which backing data partition a request targets.
type Environment string

const (
	// EnvSB1 is the sandbox deployment.
	EnvSB1 Environment = "sb1"
	// EnvQA is the QA deployment.
	EnvQA Environment = "qa"
	// EnvTestData is the synthetic in-memory mode backed by the generator.
	EnvTestData Environment = "testdata"
)

// ParseEnvironment converts a string tag into an Environment.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvSB1, EnvQA, EnvTestData:
		return Environment(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
	}
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return string(e)
}
