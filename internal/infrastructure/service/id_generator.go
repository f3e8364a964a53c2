// Package service provides infrastructure-side implementations of the
// small collaborator interfaces the application layer depends on.
package service

import "github.com/google/uuid"

// UUIDGenerator issues UUID identifiers for new entities.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// GenerateID returns a new random UUID string.
func (g *UUIDGenerator) GenerateID() string {
	return uuid.New().String()
}
