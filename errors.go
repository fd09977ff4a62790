package arbor

// Error represents an error growing or evaluating trees
type Error string

const (
	// ErrInvalidConfiguration is returned for fold counts out of range
	// and unknown scoring strategies
	ErrInvalidConfiguration = Error("invalid configuration")
	// ErrDegenerateNumericSplit is the condition of a numeric split that
	// leaves every instance on the same side. Growth recovers from it
	// with a leaf instead of returning it.
	ErrDegenerateNumericSplit = Error("numeric split does not separate the dataset")
)

func (e Error) Error() string {
	return string(e)
}
