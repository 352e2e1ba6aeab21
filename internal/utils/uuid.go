package utils

import "github.com/google/uuid"

// UUIDGenerator produces random (version 4) UUID strings. It is injected
// where tests need deterministic names.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
