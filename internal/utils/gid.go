package utils

import "github.com/google/uuid"

// GIDGenerator hands out the global ids of remote lists and tasks. Ids are
// UUIDv7 so that they sort by creation time.
type GIDGenerator struct{}

func NewGIDGenerator() *GIDGenerator {
	return &GIDGenerator{}
}

func (g *GIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// the clock source failed, a random id is still unique
		return uuid.NewString()
	}
	return id.String()
}
