package livetable

// KeyAction binds a trigger key to a callback that receives the selected
// item. Description is shown in the legend under the table.
type KeyAction[T any] struct {
	Key         rune
	Description string
	Action      func(T)
}

// NewKeyAction is a shorthand for building a KeyAction.
func NewKeyAction[T any](key rune, description string, action func(T)) KeyAction[T] {
	return KeyAction[T]{Key: key, Description: description, Action: action}
}
