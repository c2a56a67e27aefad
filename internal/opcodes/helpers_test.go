package opcodes

import "fmt"

func hex(i int) string { return fmt.Sprintf("%02X", i) }

func sprintf(format string, args ...any) string { return fmt.Sprintf(format, args...) }
