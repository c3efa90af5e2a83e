package vars

import "strings"

func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}

// StrToBool accepts the spellings operators use for an energized signal.
func StrToBool(str string) bool {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "true", "t", "yes", "y", "on", "high", "1":
		return true
	}
	return false
}

// StrToLogic maps NO/NC tags to the normally-closed flag.
func StrToLogic(str string) (nc bool, ok bool) {
	switch strings.ToUpper(str) {
	case "NO":
		return false, true
	case "NC":
		return true, true
	}
	return false, false
}
