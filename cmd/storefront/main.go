// Command storefront runs the Sabor Navideño storefront, either as an HTTP
// API or as a terminal storefront.
//
//	@title						Sabor Navideño Storefront API
//	@version					1.0
//	@description				Recipe catalog with incremental reveal, cart and checkout.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
