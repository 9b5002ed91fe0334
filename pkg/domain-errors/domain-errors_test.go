package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite covers the error primitives every layer relies on:
// wrapped domain errors keep their original code and errors.Is matches by code.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorString() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeInvalidInput, Message: "capacity must be positive"}
		s.Equal("capacity must be positive", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodePersistence}
		s.Equal("persistence_failure", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("rename snapshot: permission denied")
		err := &Error{Code: CodePersistence, Message: "checkpoint failed", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeInvalidInput, Message: "bad level"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	s.Run("matches same code with different messages", func() {
		a := &Error{Code: CodePersistence, Message: "save failed"}
		b := &Error{Code: CodePersistence, Message: "load failed"}
		s.True(a.Is(b))
	})

	s.Run("does not match different codes", func() {
		s.False((&Error{Code: CodeInvalidInput}).Is(&Error{Code: CodeInternal}))
	})

	s.Run("does not match plain errors", func() {
		s.False((&Error{Code: CodeNotFound}).Is(errors.New("not_found")))
	})

	s.Run("errors.Is walks fmt wrapping", func() {
		inner := New(CodeUnavailable, "clock unavailable")
		wrapped := fmt.Errorf("poll usage: %w", inner)
		s.True(errors.Is(wrapped, &Error{Code: CodeUnavailable}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code", func() {
		original := New(CodeInvalidInput, "capacity must be positive")
		wrapped := Wrap(original, CodeInternal, "set capacity")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeInvalidInput, domainErr.Code)
		s.Equal("set capacity", domainErr.Message)
	})

	s.Run("uses provided code for plain errors", func() {
		wrapped := Wrap(errors.New("connection refused"), CodePersistence, "load snapshot")

		s.True(HasCode(wrapped, CodePersistence))
	})

	s.Run("keeps root cause reachable", func() {
		root := errors.New("disk full")
		s.True(errors.Is(Wrap(root, CodePersistence, "save snapshot"), root))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeValidation, "level is invalid"), CodeValidation))
	s.False(HasCode(New(CodeValidation, "level is invalid"), CodeInternal))
	s.False(HasCode(errors.New("plain"), CodeValidation))
	s.False(HasCode(nil, CodeValidation))
}
