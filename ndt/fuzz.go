package ndt

// Fuzz exercises the type-string parser with arbitrary input, following the
// legacy go-fuzz convention (a bare Fuzz(data []byte) int, no harness import).
func Fuzz(data []byte) int {
	t, err := Parse(string(data))
	if err != nil {
		return 0
	}
	_ = t.DataSize()
	_ = t.NDim()
	return 1
}
