package feature

// Error represents an error on the interpretation of feature values
type Error string

/*
ErrSchemaMismatch is the error wrapped by every failure to interpret a value
under the declared feature schema: nominal codes out of range, values of the
wrong kind, or categories no branch of a tree accounts for.
*/
const ErrSchemaMismatch = Error("value does not match feature schema")

func (e Error) Error() string {
	return string(e)
}
