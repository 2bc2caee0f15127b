package account

import (
	"regexp"

	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

var (
	containsDigit  = regexp.MustCompile(`\d`)
	containsLetter = regexp.MustCompile(`[a-zA-Z]`)
)

// ValidatePassword checks the strength policy: at least one digit and one
// letter. The first violation found is reported (digit first). No minimum
// length is enforced here; handlers bound the length at the edge.
func ValidatePassword(candidate string) error {
	if !containsDigit.MatchString(candidate) {
		return domerrors.ErrPasswordMissingDigit
	}
	if !containsLetter.MatchString(candidate) {
		return domerrors.ErrPasswordMissingLetter
	}
	return nil
}
