package sink

import (
	"errors"

	"github.com/aws/smithy-go"
)

// errNotFound is returned by get when a saved batch doesn't exist.
var errNotFound = errors.New("not found")

func hasSmithyCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var smithyErr smithy.APIError
	if errors.As(err, &smithyErr) && smithyErr.ErrorCode() == code {
		return true
	}
	return false
}
