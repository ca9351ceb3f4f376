package miner

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bardlex/minegate/pkg/errors"
)

// Caller-facing messages
const (
	MsgUnavailable    = "Mining service is not available. Is the gRPC server running?"
	MsgNoSessionID    = "No session ID received from mining service"
	MsgStartFailed    = "Failed to start mining"
	MsgSessionMissing = "Mining session not found"
)

// classify turns an RPC failure into a typed gateway error. Only status
// queries map a "not found" detail to ErrorTypeNotFound.
func classify(op string, err error, detectNotFound bool) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return errors.Wrap(err, errors.ErrorTypeTransport, op, "gRPC error: "+err.Error()).
			WithContext("code", codes.Unknown.String())
	}

	if st.Code() == codes.Unavailable {
		return errors.Wrap(err, errors.ErrorTypeUnavailable, op, MsgUnavailable).
			WithContext("code", st.Code().String())
	}

	detail := st.Message()
	if detail == "" {
		detail = st.Code().String()
	}

	if detectNotFound && strings.Contains(strings.ToLower(detail), "not found") {
		return errors.Wrap(err, errors.ErrorTypeNotFound, op, MsgSessionMissing).
			WithContext("code", st.Code().String())
	}

	return errors.Wrap(err, errors.ErrorTypeTransport, op, "gRPC error: "+detail).
		WithContext("code", st.Code().String())
}
