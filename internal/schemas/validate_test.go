package schemas

import (
	"errors"
	"testing"

	"github.com/jonathan/docforge/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validIntake = `{
  "clientName": "Jane Doe",
  "clientEmail": "jane@acme.com",
  "clientPhone": "555-0100",
  "businessName": "Acme Fitness",
  "industry": "gym",
  "services": ["Website Design"],
  "budget": "25k-40k",
  "timeline": "1-2months"
}`

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *errs.ValidationError
	require.True(t, errors.As(err, &ve), "error should be ValidationError type, got %T", err)
	fields := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestValidateProposalIntake_Valid(t *testing.T) {
	assert.NoError(t, ValidateProposalIntake([]byte(validIntake)))
}

func TestValidateProposalIntake_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{
			name:      "missing client email",
			payload:   `{"clientName":"a","clientPhone":"1","businessName":"b","industry":"gym","services":["x"],"budget":"60k+","timeline":"3months+"}`,
			wantField: "clientEmail",
		},
		{
			name:      "malformed email",
			payload:   `{"clientName":"a","clientEmail":"nope","clientPhone":"1","businessName":"b","industry":"gym","services":["x"],"budget":"60k+","timeline":"3months+"}`,
			wantField: "clientEmail",
		},
		{
			name:      "empty services",
			payload:   `{"clientName":"a","clientEmail":"a@b.co","clientPhone":"1","businessName":"b","industry":"gym","services":[],"budget":"60k+","timeline":"3months+"}`,
			wantField: "services",
		},
		{
			name:      "budget outside enumeration",
			payload:   `{"clientName":"a","clientEmail":"a@b.co","clientPhone":"1","businessName":"b","industry":"gym","services":["x"],"budget":"10k","timeline":"3months+"}`,
			wantField: "budget",
		},
		{
			name:      "unknown industry",
			payload:   `{"clientName":"a","clientEmail":"a@b.co","clientPhone":"1","businessName":"b","industry":"bakery","services":["x"],"budget":"60k+","timeline":"3months+"}`,
			wantField: "industry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProposalIntake([]byte(tt.payload))
			require.Error(t, err)
			assert.Contains(t, fieldsOf(t, err), tt.wantField)
		})
	}
}

func TestValidateProposalIntake_MalformedJSON(t *testing.T) {
	err := ValidateProposalIntake([]byte("{ invalid json }"))
	require.Error(t, err)
	assert.Equal(t, []string{"(root)"}, fieldsOf(t, err))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"ok"}`))

	err := ValidateJSONString(schema, `{}`)
	require.Error(t, err)
	assert.Equal(t, []string{"name"}, fieldsOf(t, err))

	err = ValidateJSONString(`{not a schema`, `{}`)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestProposalIntakeSchema_Embedded(t *testing.T) {
	assert.Contains(t, ProposalIntakeSchema(), `"clientEmail"`)
	_, err := compiledIntakeSchema()
	assert.NoError(t, err)
}
