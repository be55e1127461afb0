package store

// constError is a sentinel error type usable in const declarations.
type constError string

func (e constError) Error() string { return string(e) }

// Store errors.
const (
	ErrEntryNotFound       constError = "entry not found"
	ErrGoalNotFound        constError = "goal not found"
	ErrDuplicateID         constError = "id already exists"
	ErrUnsupportedSchema   constError = "unsupported ledger schema version"
	ErrStoreNotInitialized constError = "ledger not initialized, run 'carbontrack generate' or 'carbontrack entry add' first"
	ErrStoreCorrupted      constError = "ledger file corrupted"
	ErrUnknownBackend      constError = "unknown storage backend"
)
