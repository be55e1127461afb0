package footprint

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for ledger records, comparable with errors.Is.
var (
	// ErrInvalidCategory indicates a string that does not name one of the five categories.
	ErrInvalidCategory = constError("invalid category")

	// ErrNegativeAmount indicates a negative or non-finite activity amount.
	ErrNegativeAmount = constError("amount must be a non-negative finite number")

	// ErrEmptySubcategory indicates an entry without an activity label.
	ErrEmptySubcategory = constError("subcategory is required")

	// ErrInvalidWindow indicates a generator window shorter than one day.
	ErrInvalidWindow = constError("window must be at least one day")

	// ErrInvalidGoal indicates a goal that fails validation.
	ErrInvalidGoal = constError("invalid goal")

	// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
	ErrInvalidDate = constError("invalid date")
)
