package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"motorhub.backend/pkg/crypto"
)

const minSecretBytes = 16

func validateInputs(bytesLen int) error {
	if bytesLen < minSecretBytes {
		return fmt.Errorf("invalid bytes: %d (minimum %d)", bytesLen, minSecretBytes)
	}
	return nil
}

// writeEnv prints .env lines for the token signing secret
func writeEnv(w io.Writer, bytesLen int) error {
	if err := validateInputs(bytesLen); err != nil {
		return err
	}
	secret, err := crypto.GenerateRandomToken(bytesLen)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "# Generated token signing secret")
	_, _ = fmt.Fprintf(w, "JWT_SECRET=%s\n", secret)
	return nil
}

func main() {
	bytesLen := flag.Int("bytes", 32, "random bytes in the secret (hex encoded on output)")
	flag.Parse()

	if err := writeEnv(os.Stdout, *bytesLen); err != nil {
		log.Fatal(err)
	}
}
