package cli

import (
	"bufio"
	"fmt"
	"io"
)

// newLineScanner creates a line scanner from a reader.
func newLineScanner(r io.Reader) *bufio.Scanner {
	return bufio.NewScanner(r)
}

// money formats a dollar amount for display.
func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// signedMoney formats a gain/loss with its sign.
func signedMoney(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+$%.2f", v)
	}
	return fmt.Sprintf("-$%.2f", -v)
}
