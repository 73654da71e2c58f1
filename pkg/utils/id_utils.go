package utils

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID returns an opaque unique identifier.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateInternalID returns a warehouse internal id such as WH-LRX5B2K0-4F9QZ.
func GenerateInternalID(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper(fmt.Sprintf("WH-%s-%s", ts, randomBase36(5)))
}

// GenerateSerialNumber derives a serial number from the first six alphanumerics of name.
func GenerateSerialNumber(name string, now time.Time) string {
	prefix := AlnumPrefix(name, 6)
	if prefix == "" {
		prefix = "ITEM"
	}
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%03d", prefix, ts, rand.IntN(1000))
}

// GenerateLocationCode returns LOC-<ABC>-L<level>-<last four digits of the unix millis>.
func GenerateLocationCode(name string, level int, now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 4 {
		millis = millis[len(millis)-4:]
	}
	return fmt.Sprintf("LOC-%s-L%d-%s", AlnumPrefix(name, 3), level, millis)
}

// HistoryTaskID is the id given to the archived copy of a completed task.
func HistoryTaskID(taskID string, now time.Time) string {
	return fmt.Sprintf("%s-history-%d", taskID, now.UnixMilli())
}

// CommentID returns a timestamp-derived comment id.
func CommentID(now time.Time) string {
	return fmt.Sprintf("comment-%d", now.UnixMilli())
}

// UniqueID returns base, or base followed by -2, -3, ... when taken reports it as in use.
func UniqueID(base string, taken func(id string) bool) string {
	id := base
	for n := 2; taken(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func randomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36Digits[rand.IntN(len(base36Digits))]
	}
	return string(b)
}
