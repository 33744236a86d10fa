package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"taskpad/internal/model"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NewTaskID returns a task id that does not collide with any task in the live
// collection. Random ids make same-instant creations safe; the existence check
// covers the (vanishingly unlikely) collision anyway.
func NewTaskID(tasks []model.Task) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID("task")
		if err != nil {
			break
		}
		if !idExists(tasks, id) {
			return id
		}
	}
	// crypto/rand failed or we collided 10 times: fall back to a counted suffix.
	for n := 1; ; n++ {
		id := fmt.Sprintf("task-%d", len(tasks)+n)
		if !idExists(tasks, id) {
			return id
		}
	}
}

func idExists(tasks []model.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
