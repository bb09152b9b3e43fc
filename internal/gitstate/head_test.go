package gitstate

import (
	"errors"
	"strings"
	"testing"
)

func TestParseHeadSymbolic(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"master", "main", "feature/sub/deep", "fix-123", "v2.x"} {
		head, err := parseHead("ref: refs/heads/"+name+"\n", discardLogger())
		if err != nil {
			t.Fatalf("parseHead(%q) error = %v", name, err)
		}
		if head.Kind != HeadBranch || head.Branch != name {
			t.Fatalf("parseHead(%q) = %+v, want branch %q", name, head, name)
		}
		if head.Hash != "" {
			t.Fatalf("branch head should not carry a hash: %+v", head)
		}
	}
}

func TestParseHeadDetached(t *testing.T) {
	t.Parallel()

	hashes := []string{
		"abcd",
		"deadbeef01",
		"ABCDEF0123",
		"abcdef0123456789abcdef0123456789abcdef01",
	}
	for _, hash := range hashes {
		head, err := parseHead("  "+hash+"\n", discardLogger())
		if err != nil {
			t.Fatalf("parseHead(%q) error = %v", hash, err)
		}
		if head.Kind != HeadDetached || head.Hash != hash {
			t.Fatalf("parseHead(%q) = %+v, want detached %q", hash, head, hash)
		}
	}
}

// A hex string could also match the tolerant branch pattern's error path; it
// must always parse as a commit, never as a branch.
func TestParseHeadHexNeverBranch(t *testing.T) {
	t.Parallel()

	head, err := parseHead("abcdef", discardLogger())
	if err != nil {
		t.Fatalf("parseHead() error = %v", err)
	}
	if head.Kind != HeadDetached {
		t.Fatalf("hex content parsed as %+v, want detached", head)
	}
}

func TestParseHeadTolerant(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"refs/heads/master", "master"},
		{"/refs/heads/master", "master"},
		{"ref:  refs/heads/dev", "dev"},
		{"  ref: /refs/heads/feature/x", "feature/x"},
	}
	for _, tc := range cases {
		head, err := parseHead(tc.in, discardLogger())
		if err != nil {
			t.Fatalf("parseHead(%q) error = %v", tc.in, err)
		}
		if head.Kind != HeadBranch || head.Branch != tc.want {
			t.Fatalf("parseHead(%q) = %+v, want branch %q", tc.in, head, tc.want)
		}
	}
}

func TestParseHeadInvalid(t *testing.T) {
	t.Parallel()

	const raw = "not a ref\n"
	_, err := parseHead(raw, discardLogger())
	if err == nil {
		t.Fatal("expected error")
	}
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StateError", err)
	}
	if serr.Kind != ErrFormat {
		t.Fatalf("error kind = %v, want %v", serr.Kind, ErrFormat)
	}
	if serr.Raw != raw {
		t.Fatalf("error should carry the untrimmed content, got %q", serr.Raw)
	}
	if !strings.Contains(serr.Error(), "not a ref") {
		t.Fatalf("message should quote the content: %s", serr.Error())
	}
}

func TestParseHeadEmpty(t *testing.T) {
	t.Parallel()

	_, err := parseHead("", discardLogger())
	var serr *StateError
	if !errors.As(err, &serr) || serr.Kind != ErrFormat {
		t.Fatalf("empty HEAD should be a format error, got %v", err)
	}
}
