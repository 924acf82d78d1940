package builtins

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseJobSpec parses a job specification of the form "%N" or "N" into a
// job id.
func ParseJobSpec(spec string) (int, error) {
	s := strings.TrimPrefix(spec, "%")
	jid, err := strconv.Atoi(s)
	if err != nil || jid < 1 {
		return 0, fmt.Errorf("%s: invalid job spec", spec)
	}
	return jid, nil
}
