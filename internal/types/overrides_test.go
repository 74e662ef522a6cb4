//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideSet_UnmarshalJSON(t *testing.T) {
	data := `{
		"images": {"cover": "data:image/png;base64,AAAA", "hero": "https://example.com/x.png"},
		"texts": {"whoWeAre": "We build fast sites.", "pricing": ""},
		"heights": {"pricing": 180.4, "who-we-are": 260}
	}`

	var set OverrideSet
	require.NoError(t, json.Unmarshal([]byte(data), &set))

	assert.Equal(t, map[SectionID]string{SectionCover: "data:image/png;base64,AAAA"}, set.Images)
	assert.Equal(t, "We build fast sites.", set.Texts[SectionWhoWeAre])
	// empty strings survive decoding; the resolver treats them as absent
	v, ok := set.Texts[SectionPricing]
	assert.True(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, 180, set.Heights[SectionPricing])
	assert.Equal(t, 260, set.Heights[SectionWhoWeAre])
}

func TestOverrideSet_UnmarshalJSON_Empty(t *testing.T) {
	var set OverrideSet
	require.NoError(t, json.Unmarshal([]byte(`{}`), &set))
	assert.Nil(t, set.Images)
	assert.Nil(t, set.Texts)
	assert.Nil(t, set.Heights)
}

func TestOverrideSet_UnmarshalJSON_WrongShape(t *testing.T) {
	var set OverrideSet
	err := json.Unmarshal([]byte(`{"heights": {"cover": "tall"}}`), &set)
	assert.Error(t, err)
}

func TestOverrideSet_UnmarshalJSON_DuplicateSpellings(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "kebab-case wins over camelCase",
			data: `{"texts": {"whoWeAre": "FIRST", "who-we-are": "SECOND"}}`,
			want: "SECOND",
		},
		{
			name: "kebab-case wins over snake_case",
			data: `{"texts": {"who_we_are": "FIRST", "who-we-are": "SECOND"}}`,
			want: "SECOND",
		},
		{
			name: "smallest key wins without a kebab-case key",
			data: `{"texts": {"who_we_are": "SNAKE", "whoWeAre": "CAMEL"}}`,
			want: "CAMEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				var set OverrideSet
				require.NoError(t, json.Unmarshal([]byte(tt.data), &set))
				require.Equal(t, tt.want, set.Texts[SectionWhoWeAre])
			}
		})
	}
}

func TestOverrideSet_UnmarshalJSON_DuplicateSpellingsAllLayers(t *testing.T) {
	data := `{
		"images": {"whyUs": "a.png", "why-us": "b.png"},
		"heights": {"next_steps": 120, "next-steps": 140}
	}`
	for i := 0; i < 50; i++ {
		var set OverrideSet
		require.NoError(t, json.Unmarshal([]byte(data), &set))
		require.Equal(t, "b.png", set.Images[SectionWhyUs])
		require.Equal(t, 140, set.Heights[SectionNextSteps])
	}
}

func TestOverrideSet_UnmarshalJSON_HugeHeights(t *testing.T) {
	var set OverrideSet
	require.NoError(t, json.Unmarshal([]byte(`{"heights": {"cover": 1e300, "pricing": -1e300}}`), &set))
	assert.Positive(t, set.Heights[SectionCover])
	assert.Negative(t, set.Heights[SectionPricing])
}

func TestOverrideSet_MarshalJSON(t *testing.T) {
	set := OverrideSet{Heights: map[SectionID]int{SectionCover: 320}}
	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"heights":{"cover":320}}`, string(data))
}

func TestProposalIntake_Validation(t *testing.T) {
	validate := validator.New()

	valid := ProposalIntake{
		ClientName:   "A",
		ClientEmail:  "a@acme.com",
		ClientPhone:  "+1-555",
		BusinessName: "Acme",
		Industry:     "gym",
		Services:     []string{"Web Design"},
		Budget:       "15k-25k",
		Timeline:     "1-2weeks",
	}

	tests := []struct {
		name    string
		mutate  func(p *ProposalIntake)
		wantErr bool
		errMsg  string
	}{
		{name: "valid", mutate: func(*ProposalIntake) {}},
		{name: "bad email", mutate: func(p *ProposalIntake) { p.ClientEmail = "nope" }, wantErr: true, errMsg: "email"},
		{name: "no services", mutate: func(p *ProposalIntake) { p.Services = nil }, wantErr: true, errMsg: "required"},
		{name: "blank service", mutate: func(p *ProposalIntake) { p.Services = []string{""} }, wantErr: true, errMsg: "required"},
		{name: "unknown budget", mutate: func(p *ProposalIntake) { p.Budget = "5k" }, wantErr: true, errMsg: "oneof"},
		{name: "unknown timeline", mutate: func(p *ProposalIntake) { p.Timeline = "someday" }, wantErr: true, errMsg: "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := validate.Struct(p)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAgencyProfile_Validation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(AgencyProfile{Name: "Studio"}))
	assert.Error(t, validate.Struct(AgencyProfile{}))
	assert.Error(t, validate.Struct(AgencyProfile{Name: "Studio", Email: "bad"}))
	assert.Error(t, validate.Struct(AgencyProfile{Name: "Studio", Website: "not a url"}))
}
