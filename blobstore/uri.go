package blobstore

import (
	"fmt"
	"strings"
)

// URI is a parsed remote object reference of the form scheme://bucket/key.
type URI struct {
	Scheme string
	Bucket string
	Key    string
}

// String returns the reference in scheme://bucket/key form.
func (u URI) String() string {
	return fmt.Sprintf("%s://%s/%s", u.Scheme, u.Bucket, u.Key)
}

// ParseURI parses s as a remote reference. ok is false for anything that is
// not scheme://bucket/key with a non-empty bucket and key (local paths,
// file:// URLs and bare keys).
func ParseURI(s string) (u URI, ok bool) {
	scheme, rest, found := strings.Cut(s, "://")
	if !found || scheme == "" || strings.EqualFold(scheme, "file") {
		return URI{}, false
	}
	for _, r := range scheme {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return URI{}, false
		}
	}
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return URI{}, false
	}
	return URI{Scheme: strings.ToLower(scheme), Bucket: bucket, Key: key}, true
}
