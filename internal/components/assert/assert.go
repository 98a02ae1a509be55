// Package assert panics on programmer errors, conditions that no input
// from a user or a remote server can cause.
package assert

import "fmt"

func NotNil(value any, what string) {
	if value == nil {
		panic(fmt.Sprintf("expected %s to be not nil", what))
	}
}

func NotEmptyStr(str string, what string) {
	if str == "" {
		panic(fmt.Sprintf("expected %s to be non-empty", what))
	}
}
