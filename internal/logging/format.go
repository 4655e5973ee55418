package logging

import (
	"fmt"
	"strings"
)

func sprintln(args ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
