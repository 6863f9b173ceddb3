package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqlens/internal/domain"
	"reqlens/internal/export"
)

func exportRecords() []domain.RequirementRecord {
	return []domain.RequirementRecord{
		{
			ID: "REQ-1", GlobalID: "G1", Name: "First", Description: "The system shall start.",
			ExtraFields: []domain.ExtraField{{Name: "Status", Value: "Draft"}},
		},
		{
			ID: "REQ-2", Name: "Second", Description: "The system shall stop.",
			ExtraFields: []domain.ExtraField{{Name: "Priority", Value: "High"}, {Name: "Status", Value: "Approved"}},
		},
	}
}

func TestCSVWriter_WriteRecords(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)

	require.NoError(t, w.WriteRecords(exportRecords()))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, export.BOM), "output must start with the UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, export.BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Extra columns follow the fixed ones in first-appearance order.
	assert.Equal(t, []string{"Item ID", "Global ID", "Name", "Requirement Description", "Status", "Priority"}, rows[0])
	assert.Equal(t, []string{"REQ-1", "G1", "First", "The system shall start.", "Draft", ""}, rows[1])
	assert.Equal(t, []string{"REQ-2", "", "Second", "The system shall stop.", "Approved", "High"}, rows[2])
}

func TestCSVWriter_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)

	require.NoError(t, w.WriteRecords(nil))

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), export.BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Item ID", "Global ID", "Name", "Requirement Description"}, rows[0])
}
