package nativeext

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesExtension(t *testing.T) {
	assert.True(t, MatchesExtension("sentencepiece_wrap.cxx", ".cxx", ".cpp"))
	assert.True(t, MatchesExtension("WRAP.CPP", ".cpp"))
	assert.True(t, MatchesExtension("wrap.cc", "cc"))
	assert.False(t, MatchesExtension("wrap.py", ".cxx", ".cpp"))
	assert.False(t, MatchesExtension("wrap.cxx"))
}

func TestBuildError(t *testing.T) {
	cause := errors.New("exit status 1")

	testCases := []struct {
		name     string
		output   []string
		err      error
		expected string
	}{
		{"no output no error", nil, nil, "cmake build failed"},
		{"output only", []string{"line1", "line2"}, nil, "cmake build failed\n\nBuild output:\nline1\nline2"},
		{"error only", nil, cause, "cmake build failed: exit status 1"},
		{"error and output", []string{"", "boom", ""}, cause, "cmake build failed: exit status 1\n\nBuild output:\nboom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := BuildError("cmake", tc.output, tc.err)
			assert.EqualError(t, err, tc.expected)
			if tc.err != nil {
				assert.ErrorIs(t, err, cause)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\r\n\r\nb"))
}

func TestExpandPlaceholders(t *testing.T) {
	args := []string{"./build_bundled.sh", "{{ref}}", "--prefix={{root}}/x", "{{unknown}}"}

	expanded := expandPlaceholders(args, map[string]string{"ref": "v0.2.1", "root": "/r"})

	assert.Equal(t, []string{"./build_bundled.sh", "v0.2.1", "--prefix=/r/x", "{{unknown}}"}, expanded)
	assert.Equal(t, "{{ref}}", args[1])
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueStrings([]string{"a", "", "b", "a"}))
	assert.Nil(t, uniqueStrings(nil))
}

func TestStepErrorUnwrap(t *testing.T) {
	err := &StepError{Step: "verify cmake build", Root: "build/root", Err: ErrNoArtifacts}

	assert.ErrorIs(t, err, ErrNoArtifacts)
	assert.Contains(t, err.Error(), "verify cmake build")
	assert.Contains(t, err.Error(), "build/root")
}
