package models

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "logvault/pkg/domain-errors"
	"logvault/pkg/validation"
)

func init() {
	valid := func(v string) bool {
		_, err := ParseLevel(v)
		return err == nil
	}
	if err := validation.RegisterTag("loglevel", valid, "must be one of Debug, Info, Warn, Error, Fatal"); err != nil {
		panic(err)
	}
}

// Level is the severity of an entry. The numeric value is the rank callers
// compare against: Debug < Info < Warn < Error < Fatal.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{
	LevelDebug: "Debug",
	LevelInfo:  "Info",
	LevelWarn:  "Warn",
	LevelError: "Error",
	LevelFatal: "Fatal",
}

// Levels lists every level in ascending rank.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}
}

func (l Level) IsValid() bool {
	return int(l) < len(levelNames)
}

// Rank is the numeric position of l in the severity order.
func (l Level) Rank() int {
	return int(l)
}

// AtLeast reports whether l is at or above threshold.
func (l Level) AtLeast(threshold Level) bool {
	return l >= threshold
}

func (l Level) String() string {
	if !l.IsValid() {
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
	return levelNames[l]
}

// ParseLevel accepts a level tag in any case ("warn", "Warn", "WARN") or its
// numeric rank ("2").
func ParseLevel(s string) (Level, error) {
	tag := strings.TrimSpace(s)
	for i, name := range levelNames {
		if strings.EqualFold(tag, name) {
			return Level(i), nil
		}
	}
	if rank, err := strconv.Atoi(tag); err == nil {
		return LevelFromRank(rank)
	}
	return 0, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown level %q", s))
}

// LevelFromRank converts a numeric rank back into a Level.
func LevelFromRank(rank int) (Level, error) {
	if rank < 0 || rank >= len(levelNames) {
		return 0, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("level rank %d out of range", rank))
	}
	return Level(rank), nil
}

// MarshalText encodes the level as its tag so persisted images survive a
// reordering of the constants.
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("marshal level: invalid value %d", uint8(l))
	}
	return []byte(levelNames[l]), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
