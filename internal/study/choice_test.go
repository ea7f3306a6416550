package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/recall/internal/sm2"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in      string
		want    sm2.Quality
		wantErr bool
	}{
		{in: "didnt-know", want: sm2.Incorrect},
		{in: "Didn't Know", want: sm2.Incorrect},
		{in: "didnt_know", want: sm2.Incorrect},
		{in: "hard", want: sm2.CorrectDifficult},
		{in: " EASY ", want: sm2.Perfect},
		{in: "4", want: sm2.CorrectHesitant},
		{in: "9", want: 9},
		{in: "-2", want: -2},
		{in: "maybe", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChoice(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownChoice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChoiceQuality(t *testing.T) {
	assert.Equal(t, sm2.Quality(1), DidntKnow.Quality())
	assert.Equal(t, sm2.Quality(3), Hard.Quality())
	assert.Equal(t, sm2.Quality(5), Easy.Quality())
	assert.Equal(t, sm2.Blackout, Choice("other").Quality())
}
