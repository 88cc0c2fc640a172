// Command schemacompress turns a relational schema into a
// token-minimizing prompt encoding.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
