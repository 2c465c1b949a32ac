//go:build unix

package freshness

import "syscall"

// detachedAttr starts the child in a new session so it survives the parent.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
