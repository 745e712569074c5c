package searchattr

import (
	"errors"
	"strings"

	"go.temporal.io/api/serviceerror"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsAlreadyExists reports whether err indicates that an attribute in an add
// request is already registered. Depending on the server version this is
// surfaced as AlreadyExists or as InvalidArgument naming the attribute.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	var exists *serviceerror.AlreadyExists
	if errors.As(err, &exists) {
		return true
	}
	var invalid *serviceerror.InvalidArgument
	if errors.As(err, &invalid) {
		return mentionsAlreadyExists(invalid.Error())
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.AlreadyExists:
		return true
	case codes.InvalidArgument:
		return mentionsAlreadyExists(st.Message())
	default:
		return false
	}
}

func mentionsAlreadyExists(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "already exists")
}
