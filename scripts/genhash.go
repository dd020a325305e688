// genhash prints bcrypt hashes for seeding accounts directly into the database.
//
//	go run ./scripts/genhash.go -cost 10 secret1 secret2
package main

import (
	"flag"
	"fmt"
	"os"

	"labournet-backend/pkg/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost n] password...")
		os.Exit(2)
	}

	hasher := auth.NewPasswordHasher(*cost)
	for _, pass := range flag.Args() {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
