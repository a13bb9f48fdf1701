package reason

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{
			"quota status",
			errors.New(`googleapi: Error 429: RESOURCE_EXHAUSTED`),
			FailureQuota,
		},
		{
			"quota message",
			errors.New(`Quota exceeded for quota metric 'Generate Content API requests'`),
			FailureQuota,
		},
		{
			"expired credential",
			errors.New(`Error 404: Requested entity was not found.`),
			FailureCredential,
		},
		{
			"plain failure",
			errors.New("connection reset by peer"),
			FailureGeneric,
		},
		{
			"nil",
			nil,
			FailureGeneric,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindThroughWrapping(t *testing.T) {
	inner := errors.New("Quota exceeded")
	re := &RemoteError{Op: "parse", Kind: Classify(inner), Err: inner}
	wrapped := fmt.Errorf("analysis: %w", re)

	if got := Kind(wrapped); got != FailureQuota {
		t.Errorf("Kind() = %v, want FailureQuota", got)
	}
	if got := Kind(errors.New("bare")); got != FailureGeneric {
		t.Errorf("Kind(bare) = %v, want FailureGeneric", got)
	}
}

func TestRemoteErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	re := &RemoteError{Op: "simulate", Err: inner}
	if !errors.Is(re, inner) {
		t.Error("RemoteError should unwrap to its cause")
	}
	if !strings.Contains(re.Error(), "simulate") {
		t.Errorf("Error() = %q, want the operation name in it", re.Error())
	}
}

func TestUserMessage(t *testing.T) {
	quota := &RemoteError{Op: "parse", Kind: FailureQuota, Err: errors.New("Quota exceeded")}
	if msg := UserMessage(quota); !strings.Contains(msg, "quota") {
		t.Errorf("quota message = %q, want it to mention the quota", msg)
	}

	cred := &RemoteError{Op: "parse", Kind: FailureCredential, Err: errors.New("Requested entity was not found")}
	if msg := UserMessage(cred); !strings.Contains(msg, "key") {
		t.Errorf("credential message = %q, want it to ask for a key", msg)
	}

	generic := &RemoteError{Op: "simulate", Kind: FailureGeneric, Err: errors.New("timeout")}
	msg := UserMessage(generic)
	if !strings.Contains(msg, "simulate") || !strings.Contains(msg, "timeout") {
		t.Errorf("generic message = %q, want operation and cause", msg)
	}
}
