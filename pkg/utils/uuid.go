package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 6
)

// GenerateID gera o identificador curto usado por accounts e insert_audit
// (char(6) no schema).
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
