package ledger

import "errors"

var (
	// ErrEmptyCategoryName is returned when category text is blank after trimming.
	ErrEmptyCategoryName = errors.New("category name is empty")
	// ErrInvalidAmount is returned for amounts that cannot be parsed or are not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrFieldTooLong  = errors.New("field too long")

	ErrNotFound = errors.New("record not found")
	// ErrStorage wraps every storage fault that is not ErrNotFound.
	ErrStorage = errors.New("storage error")

	// ErrCategoryInUse is returned when deleting a category that expenses still reference.
	ErrCategoryInUse = errors.New("category is referenced by expenses")
)

// IsValidation reports whether err is a user input error that can be fixed by re-prompting.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyCategoryName) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrFieldTooLong)
}
