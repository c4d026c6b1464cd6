package config

const (
	// MaxURLLength is the maximum length of a FILE url.
	// Matches the VARCHAR(255) column of the items table.
	MaxURLLength = 255

	// MaxImportBodyBytes bounds the size of one import request body.
	MaxImportBodyBytes = 10 << 20
)
