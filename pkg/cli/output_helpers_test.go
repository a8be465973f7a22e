package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	require.NoError(t, validateOutputFormat(""))
	require.NoError(t, validateOutputFormat("table"))
	require.NoError(t, validateOutputFormat("json"))
	require.Error(t, validateOutputFormat("yaml"))
}

func TestPrintTable_AlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, []string{"ID", "NAME"}, [][]string{
		{"1", "Paracetamol"},
		{"42", "Amoxicillin"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Paracetamol")
	assert.Contains(t, out, "42")
}

func TestPrintJSON_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	err := printJSON(&buf, map[string]string{"next": "/dashboard?a=1&b=2"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&b=2")
}
