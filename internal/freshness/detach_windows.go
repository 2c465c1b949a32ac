//go:build windows

package freshness

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// detachedAttr starts the child without a console and outside the parent's process
// group, so closing the launcher does not take it down.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
		HideWindow:    true,
	}
}
