package dataset

// Error represents an error building or querying a dataset
type Error string

const (
	// ErrEmptyDataset is returned when a dataset without instances is used
	// where at least one is required
	ErrEmptyDataset = Error("dataset has no instances")
	// ErrInvalidClass is returned when the class attribute is not declared
	// or is not nominal
	ErrInvalidClass = Error("invalid class attribute")
)

func (e Error) Error() string {
	return string(e)
}
