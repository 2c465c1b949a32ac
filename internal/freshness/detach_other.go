//go:build !unix && !windows

package freshness

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}
