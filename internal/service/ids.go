package service

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	supplierPrefix = "S"
	reviewPrefix   = "R"
)

// nextID returns prefix + zero-padded (count+1). When existing ids carry a
// higher number (a seed with gaps) it continues after the highest one so ids
// are never reused.
func nextID(prefix string, ids []string) string {
	next := len(ids)
	for _, id := range ids {
		n, ok := idNumber(prefix, id)
		if ok && n > next {
			next = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next+1)
}

func idNumber(prefix, id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
