package azure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

func respErr(status int, code string) error {
	return &azcore.ResponseError{StatusCode: status, ErrorCode: code}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(respErr(http.StatusNotFound, "ResourceNotFound")) {
		t.Error("IsNotFound = false for a 404")
	}
	if !IsNotFound(fmt.Errorf("get zone: %w", respErr(http.StatusNotFound, "ResourceNotFound"))) {
		t.Error("IsNotFound = false for a wrapped 404")
	}
	if IsNotFound(respErr(http.StatusConflict, "Conflict")) {
		t.Error("IsNotFound = true for a 409")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound = true for a non-service error")
	}
}

func TestIsConflict(t *testing.T) {
	if !IsConflict(respErr(http.StatusConflict, "PreconditionFailed")) {
		t.Error("IsConflict = false for a 409")
	}
	if IsConflict(respErr(http.StatusNotFound, "ResourceNotFound")) {
		t.Error("IsConflict = true for a 404")
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(respErr(http.StatusUnauthorized, "InvalidAuthenticationToken")) {
		t.Error("IsUnauthorized = false for a 401")
	}
	if !IsUnauthorized(respErr(http.StatusForbidden, "AuthorizationFailed")) {
		t.Error("IsUnauthorized = false for a 403")
	}
	if IsUnauthorized(respErr(http.StatusNotFound, "ResourceNotFound")) {
		t.Error("IsUnauthorized = true for a 404")
	}
}

func TestErrorCode(t *testing.T) {
	if got := ErrorCode(respErr(http.StatusNotFound, "ResourceNotFound")); got != "ResourceNotFound" {
		t.Errorf("ErrorCode = %q, want ResourceNotFound", got)
	}
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Errorf("ErrorCode = %q for a non-service error, want empty", got)
	}
}
