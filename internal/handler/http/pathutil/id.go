package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the path does not carry a usable ID.
var ErrInvalidID = errors.New("invalid id")

// ExtractID pulls the numeric ID out of a path like "/person/123".
// The prefix must match exactly and whatever follows it must parse as
// a positive int64; anything else, including zero, a negative number,
// or trailing path segments, yields ErrInvalidID. Handlers translate
// that into a 400 without leaking the raw parse error.
func ExtractID(path, prefix string) (int64, error) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		return 0, ErrInvalidID
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
