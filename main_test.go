/* main_test.go
 * Contains unit tests for main.go and utils.go functions
 */

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConvertStrToBool_True tests converting "true" string
func TestConvertStrToBool_True(t *testing.T) {
	result, err := convertStrToBool("true")

	assert.NoError(t, err)
	assert.True(t, result)
}

// TestConvertStrToBool_False tests converting "false" string
func TestConvertStrToBool_False(t *testing.T) {
	result, err := convertStrToBool("false")

	assert.NoError(t, err)
	assert.False(t, result)
}

// TestConvertStrToBool_CaseInsensitive tests mixed case "TrUe"
func TestConvertStrToBool_CaseInsensitive(t *testing.T) {
	result, err := convertStrToBool("TrUe")

	assert.NoError(t, err)
	assert.True(t, result)
}

// TestConvertStrToBool_WithWhitespace tests string with leading/trailing whitespace
func TestConvertStrToBool_WithWhitespace(t *testing.T) {
	result, err := convertStrToBool("  true  ")

	assert.NoError(t, err)
	assert.True(t, result)
}

// TestConvertStrToBool_InvalidString tests invalid boolean string
func TestConvertStrToBool_InvalidString(t *testing.T) {
	_, err := convertStrToBool("yes")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid boolean string")
}

// TestConvertStrToBool_EmptyString tests empty string
func TestConvertStrToBool_EmptyString(t *testing.T) {
	_, err := convertStrToBool("")

	assert.Error(t, err)
}

// TestParseItemList_SimpleItems tests a plain space-separated list
func TestParseItemList_SimpleItems(t *testing.T) {
	items, err := parseItemList("Broom Whiteboard Plants")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Broom", "Whiteboard", "Plants"}, items)
}

// TestParseItemList_QuotedItems tests items whose names contain spaces
func TestParseItemList_QuotedItems(t *testing.T) {
	items, err := parseItemList(`Broom "Door Holder" "Library Cart"`)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Broom", "Door Holder", "Library Cart"}, items)
}

// TestParseItemList_Empty tests an empty flag value
func TestParseItemList_Empty(t *testing.T) {
	items, err := parseItemList("   ")

	assert.NoError(t, err)
	assert.Empty(t, items)
}

// TestParseItemList_CollapsesExtraSpaces tests repeated separators between items
func TestParseItemList_CollapsesExtraSpaces(t *testing.T) {
	items, err := parseItemList("Broom   Whiteboard")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Broom", "Whiteboard"}, items)
}
