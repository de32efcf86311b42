package types

// Metadata is a map of key-value pairs that can be attached to any entity
type Metadata map[string]string
