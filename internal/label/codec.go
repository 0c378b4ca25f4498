package label

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrCodec is matched by every CodecError via errors.Is.
var ErrCodec = errors.New("label codec error")

// CodecError reports a segment that is not validly percent-encoded.
// It means the segment was never produced by EncodeSegment.
type CodecError struct {
	Segment string
	Err     error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("decode segment %q: %v", e.Segment, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCodec) true for any CodecError.
func (e *CodecError) Is(target error) bool {
	return target == ErrCodec
}

// EncodeSegment encodes a label so it can be used as a single path segment.
// Spaces become '+', reserved and non-ASCII bytes become %XX escapes.
// The labels "." and ".." are fully escaped so they never read as a path step.
func EncodeSegment(label string) string {
	if label == "." || label == ".." {
		return strings.Repeat("%2E", len(label))
	}
	return url.QueryEscape(label)
}

// DecodeSegment is the inverse of EncodeSegment.
func DecodeSegment(segment string) (string, error) {
	decoded, err := url.QueryUnescape(segment)
	if err != nil {
		return "", &CodecError{Segment: segment, Err: err}
	}
	return decoded, nil
}
