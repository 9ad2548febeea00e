package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Ana Gómez", CleanString(" \tAna Gómez\n"))
	assert.Equal(t, "ana gómez", CleanString(" Ana Gómez ", true))
	assert.Equal(t, "", CleanString("   "))
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		cell string
		want []string
	}{
		{cell: "", want: []string{}},
		{cell: " , ,", want: []string{}},
		{cell: "Ana", want: []string{"Ana"}},
		{cell: "Ana, Beto ,Carla", want: []string{"Ana", "Beto", "Carla"}},
		{cell: "Ana,,Beto", want: []string{"Ana", "Beto"}},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got := SplitList(tt.cell)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, SplitList(JoinList(got)))
		})
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("GÓMEZ", "Ana Gómez"))
	assert.True(t, ContainsFold("uni", "Ana", "ana@uni.co"))
	assert.False(t, ContainsFold("beto", "Ana", "ana@uni.co"))
	assert.True(t, ContainsFold("", "Ana"))
}
