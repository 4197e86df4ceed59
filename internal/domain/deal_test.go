package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStage(t *testing.T) {
	tests := []struct {
		input string
		want  StageID
	}{
		{"new", StageNew},
		{"New", StageNew},
		{"Lead", StageNew},
		{"qualifying", StageQualifying},
		{"Qualification", StageQualifying},
		{"requirements", StageRequirements},
		{"Value Proposition", StageValueProposition},
		{"value-proposition", StageValueProposition},
		{"Proposal", StageValueProposition},
		{"NEGOTIATION", StageNegotiation},
		{"ready_to_close", StageReadyToClose},
		{"Ready To Close", StageReadyToClose},
		{"closed_won", StageClosedWon},
		{"Won", StageClosedWon},
		{"Closed Won", StageClosedWon},
		// unknown inputs degrade to the default bucket, never an error
		{"Bogus", StageNew},
		{"", StageNew},
		{"   ", StageNew},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStage(tt.input))
		})
	}
}

func TestNormalizeStage_IsTotal(t *testing.T) {
	// every output is one of the seven canonical values
	canonical := map[StageID]bool{}
	for _, s := range Stages() {
		canonical[s] = true
	}
	inputs := []string{"x", "closed lost", "42", "win", "verbal", "discovery", "véndu"}
	for _, in := range inputs {
		assert.True(t, canonical[NormalizeStage(in)], "input %q", in)
	}
}

func TestStageLabel(t *testing.T) {
	for _, s := range Stages() {
		assert.NotEmpty(t, s.Label())
	}
	assert.Equal(t, "Value Proposition", StageValueProposition.Label())
	assert.Equal(t, "Closed Won", StageClosedWon.Label())
}

func TestDeal_WeightedValue(t *testing.T) {
	d := Deal{Value: 20000, Probability: 25}
	assert.InDelta(t, 5000, d.WeightedValue(), 0.001)
}
