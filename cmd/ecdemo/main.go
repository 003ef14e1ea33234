// Command ecdemo demonstrates elliptic curve arithmetic over small prime fields and the reals: point tables, the
// group law, scalar multiplication, a toy Diffie-Hellman exchange and brute-force discrete logarithms.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := makeRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
