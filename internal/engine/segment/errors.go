package segment

import (
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by errors from Set.Check.
var ErrCorrupt = errors.New("segment bookkeeping corrupt")

func errSegment(msg string) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, msg)
}
