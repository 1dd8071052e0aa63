package main

import (
	"flag"
	"fmt"
	"os"

	"storefront/internal"
)

func main() {
	code := flag.String("code", internal.DefaultVerificationCode, "Six-digit checkout verification code")
	out := flag.String("out", "code.hash", "File to write the bcrypt hash to")
	flag.Parse()

	if _, err := os.Stat(*out); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Refusing to overwrite.\n", *out)
		os.Exit(1)
	}
	hash, err := internal.HashVerificationCode(*code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing code: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(hash, '\n'), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Verification hash written to %s\n", *out)
}
