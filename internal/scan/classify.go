package scan

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Class is the recovery category of a failed scan operation.
type Class int

const (
	ClassOK Class = iota
	ClassRetryable
	ClassPermissionDenied
	ClassInterfaceDown
	ClassBusy
	ClassFatal
)

func (c Class) String() string {
	switch c {
	case ClassOK:
		return "ok"
	case ClassRetryable:
		return "retryable"
	case ClassPermissionDenied:
		return "permission denied"
	case ClassInterfaceDown:
		return "interface down"
	case ClassBusy:
		return "busy"
	default:
		return "fatal"
	}
}

// Classify maps an error from the wireless layer to a Class. Errors that do
// not wrap a unix.Errno are fatal.
func Classify(err error) Class {
	if err == nil {
		return ClassOK
	}
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return ClassFatal
	}
	return classifyErrno(errno)
}

// ClassifyCode classifies a raw errno number. Netlink reports errors as
// negated codes, so the sign is ignored.
func ClassifyCode(code int) Class {
	if code == 0 {
		return ClassOK
	}
	if code < 0 {
		code = -code
	}
	return classifyErrno(unix.Errno(code))
}

func classifyErrno(errno unix.Errno) Class {
	switch errno {
	case unix.EAGAIN, unix.EINTR, unix.EFAULT:
		return ClassRetryable
	case unix.EPERM:
		return ClassPermissionDenied
	case unix.ENETDOWN:
		return ClassInterfaceDown
	case unix.EBUSY:
		return ClassBusy
	default:
		return ClassFatal
	}
}
