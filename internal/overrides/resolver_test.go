package overrides

import (
	"testing"

	"github.com/jonathan/docforge/internal/types"
	"github.com/stretchr/testify/assert"
)

func testTemplate() *types.IndustryTemplate {
	tmpl := &types.IndustryTemplate{ID: "gym", Kind: types.KindProposal}
	for _, s := range types.AllSections() {
		tmpl.Blocks[s] = types.ContentBlock{
			Section: s,
			Title:   "Static " + s.String(),
			Body:    "static body " + s.String(),
			Image:   "https://img.example/" + s.String() + ".jpg",
		}
	}
	tmpl.Blocks[types.SectionWhoWeAre].Title = "About {agency}"
	tmpl.Blocks[types.SectionSolutions].Title = "Our Solution for {industry}"
	return tmpl
}

func testFacts() *types.ProposalIntake {
	return &types.ProposalIntake{
		ClientName:   "Jane",
		BusinessName: "Acme Fitness",
		Industry:     "gym",
		Services:     []string{"Website Design", " ", "SEO"},
		Budget:       "25k-40k",
		Timeline:     "1-2months",
	}
}

var testAgency = types.AgencyProfile{Name: "Brightline", Email: "hi@brightline.dev", Phone: "555"}

func TestResolve_BodyPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		section types.SectionID
		texts   map[types.SectionID]string
		facts   *types.ProposalIntake
		want    string
	}{
		{
			name:    "user override wins over computed",
			section: types.SectionCover,
			texts:   map[types.SectionID]string{types.SectionCover: "Custom cover"},
			facts:   testFacts(),
			want:    "Custom cover",
		},
		{
			name:    "computed default when no override",
			section: types.SectionCover,
			facts:   testFacts(),
			want:    "Prepared for Jane at Acme Fitness",
		},
		{
			name:    "empty override falls through",
			section: types.SectionCover,
			texts:   map[types.SectionID]string{types.SectionCover: ""},
			facts:   testFacts(),
			want:    "Prepared for Jane at Acme Fitness",
		},
		{
			name:    "whitespace override falls through",
			section: types.SectionCover,
			texts:   map[types.SectionID]string{types.SectionCover: "  \n\t"},
			facts:   testFacts(),
			want:    "Prepared for Jane at Acme Fitness",
		},
		{
			name:    "static fallback without facts",
			section: types.SectionCover,
			facts:   nil,
			want:    "static body cover",
		},
		{
			name:    "static fallback for section without computed default",
			section: types.SectionResults,
			facts:   testFacts(),
			want:    "static body results",
		},
		{
			name:    "user override on section without computed default",
			section: types.SectionWhyUs,
			texts:   map[types.SectionID]string{types.SectionWhyUs: "Because."},
			facts:   testFacts(),
			want:    "Because.",
		},
		{
			name:    "unknown budget falls to static",
			section: types.SectionPricing,
			facts:   &types.ProposalIntake{Budget: "1m"},
			want:    "static body pricing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := types.OverrideSet{Texts: tt.texts}
			got := Resolve(tt.section, set, testTemplate(), testAgency, tt.facts)
			assert.Equal(t, tt.want, got.Body)
		})
	}
}

func TestResolve_ComputedBodies(t *testing.T) {
	facts := testFacts()
	tmpl := testTemplate()

	who := Resolve(types.SectionWhoWeAre, types.OverrideSet{}, tmpl, testAgency, facts)
	assert.Contains(t, who.Body, "Brightline")
	assert.Contains(t, who.Body, "gym businesses")

	needs := Resolve(types.SectionIndustryNeeds, types.OverrideSet{}, tmpl, testAgency, facts)
	assert.Contains(t, needs.Body, "Acme Fitness")

	solutions := Resolve(types.SectionSolutions, types.OverrideSet{}, tmpl, testAgency, facts)
	assert.Equal(t, "For Acme Fitness we will deliver:\n• Website Design\n• SEO", solutions.Body)

	pricing := Resolve(types.SectionPricing, types.OverrideSet{}, tmpl, testAgency, facts)
	assert.Contains(t, pricing.Body, "between $25,000 and $40,000")

	next := Resolve(types.SectionNextSteps, types.OverrideSet{}, tmpl, testAgency, facts)
	assert.Contains(t, next.Body, "one to two months")

	end := Resolve(types.SectionEndnotes, types.OverrideSet{}, tmpl, testAgency, nil)
	assert.Equal(t, "Brightline\nhi@brightline.dev\n555", end.Body)
}

func TestResolve_Title(t *testing.T) {
	tmpl := testTemplate()
	set := types.OverrideSet{Texts: map[types.SectionID]string{types.SectionWhoWeAre: "user text"}}

	who := Resolve(types.SectionWhoWeAre, set, tmpl, testAgency, testFacts())
	assert.Equal(t, "About Brightline", who.Title, "user text never replaces the title")

	sol := Resolve(types.SectionSolutions, set, tmpl, testAgency, &types.ProposalIntake{Industry: "real-estate"})
	assert.Equal(t, "Our Solution for Real Estate", sol.Title)

	sol = Resolve(types.SectionSolutions, set, tmpl, testAgency, nil)
	assert.Equal(t, "Our Solution for", sol.Title)

	plain := Resolve(types.SectionResults, set, tmpl, testAgency, nil)
	assert.Equal(t, "Static results", plain.Title)
}

func TestResolve_Image(t *testing.T) {
	tmpl := testTemplate()

	got := Resolve(types.SectionCover, types.OverrideSet{
		Images: map[types.SectionID]string{types.SectionCover: "data:image/png;base64,AAAA"},
	}, tmpl, testAgency, nil)
	assert.Equal(t, "data:image/png;base64,AAAA", got.Image)

	got = Resolve(types.SectionCover, types.OverrideSet{
		Images: map[types.SectionID]string{types.SectionCover: ""},
	}, tmpl, testAgency, nil)
	assert.Equal(t, "https://img.example/cover.jpg", got.Image)
}

func TestResolve_Height(t *testing.T) {
	tests := []struct {
		name    string
		section types.SectionID
		heights map[types.SectionID]int
		want    int
	}{
		{"cover default", types.SectionCover, nil, 300},
		{"pricing default", types.SectionPricing, nil, 200},
		{"next steps default", types.SectionNextSteps, nil, 200},
		{"generic default", types.SectionResults, nil, 250},
		{"endnotes has no slot", types.SectionEndnotes, nil, 0},
		{"override wins", types.SectionCover, map[types.SectionID]int{types.SectionCover: 420}, 420},
		{"zero override ignored", types.SectionCover, map[types.SectionID]int{types.SectionCover: 0}, 300},
		{"negative override ignored", types.SectionPricing, map[types.SectionID]int{types.SectionPricing: -5}, 200},
		{"override capped", types.SectionCover, map[types.SectionID]int{types.SectionCover: 5000}, MaxImageHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.section, types.OverrideSet{Heights: tt.heights}, testTemplate(), testAgency, nil)
			assert.Equal(t, tt.want, got.ImageHeight)
		})
	}
}

func TestResolve_NilTemplate(t *testing.T) {
	got := Resolve(types.SectionResults, types.OverrideSet{}, nil, testAgency, nil)
	assert.Equal(t, Resolved{ImageHeight: 250}, got)
}
