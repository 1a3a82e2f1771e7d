/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"strings"

	"github.com/go-andiamo/splitter"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// parseItemList splits a space-separated item list into its entries
// Preconditions: Receives the raw flag value; items containing spaces are double quoted, e.g. `Broom "Door Holder"`
// Postconditions: Returns the item names with surrounding quotes stripped, or an error if the input is malformed
func parseItemList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	// we use splitter here instead of go's built in splitter because now we can have item names that
	// contain spaces e.g. "Door Holder" recognised as one item not two
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, fmt.Errorf("failed to build item splitter: %w", err)
	}

	parts, err := spaceSplitter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to split item list: %w", err)
	}

	var items []string
	for _, part := range parts {
		part = strings.Trim(part, "\"")
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items, nil
}
