// Package main provides the barkit CLI for editing and validating status bar
// configurations.
package main

func main() {
	Execute()
}
