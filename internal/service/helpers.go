package service

import "strconv"

// optionalString maps an empty string to a NULL-able nil pointer.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
