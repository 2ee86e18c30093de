package admin

import "errors"

var inputErrors = []error{
	ErrEmailRequired,
	ErrNameRequired,
	ErrRoleRequired,
	ErrCountryRequired,
	ErrInvalidGender,
	ErrNegativeAmount,
	ErrInvalidStatus,
	ErrRoleNameRequired,
	ErrInvalidRoleType,
	ErrInvalidRate,
}

// IsInputError reports whether err comes from payload validation. Its text is
// written for the user.
func IsInputError(err error) bool {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
