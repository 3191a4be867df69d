package utils

func StrPtr(s string) *string {
	return &s
}

func IntPtr(n int) *int {
	return &n
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
