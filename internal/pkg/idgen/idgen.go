// Package idgen generates share ids
package idgen

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// DefaultShortLength is used when ShortGenerator.Length is not positive
const DefaultShortLength = 10

// ShortGenerator generates compact ids for share links: the first Length
// hex digits of a random UUID.
type ShortGenerator struct {
	Length int
}

func NewShort(length int) *ShortGenerator {
	return &ShortGenerator{Length: length}
}

func (g *ShortGenerator) Generate() string {
	n := g.Length
	if n <= 0 {
		n = DefaultShortLength
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:min(n, len(id))]
}

// QueueGenerator hands out a fixed list of ids in order, then numbered ids.
// Tests use it to force share id collisions.
type QueueGenerator struct {
	mu   sync.Mutex
	ids  []string
	next int
}

func NewQueue(ids ...string) *QueueGenerator {
	return &QueueGenerator{ids: ids}
}

func (g *QueueGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.ids) > 0 {
		id := g.ids[0]
		g.ids = g.ids[1:]
		return id
	}
	g.next++
	return "id-" + strconv.Itoa(g.next)
}
