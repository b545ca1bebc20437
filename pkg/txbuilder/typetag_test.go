package txbuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeTag(t *testing.T) {
	two := "0x" + strings.Repeat("0", 63) + "2"
	testCases := []struct {
		input string
		want  string
		bcs   []byte
	}{
		{input: "u64", want: "u64", bcs: []byte{2}},
		{input: "vector<u8>", want: "vector<u8>", bcs: []byte{6, 1}},
		{input: "vector< vector<address> >", want: "vector<vector<address>>", bcs: []byte{6, 6, 4}},
		{input: "0x2::sui::SUI", want: two + "::sui::SUI"},
		{input: "0x2::coin::Coin<0x2::sui::SUI>", want: two + "::coin::Coin<" + two + "::sui::SUI>"},
		{input: "0x2::table::Table<u64, vector<u8>>", want: two + "::table::Table<u64, vector<u8>>"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			tag, err := ParseTypeTag(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tag.String())
			if tc.bcs != nil {
				got, err := tag.MarshalBCS()
				require.NoError(t, err)
				assert.Equal(t, tc.bcs, got)
			}
		})
	}
}

func TestParseTypeTag_StructEncoding(t *testing.T) {
	tag, err := ParseTypeTag("0x2::sui::SUI")
	require.NoError(t, err)
	got, err := tag.MarshalBCS()
	require.NoError(t, err)

	require.Len(t, got, 1+32+1+3+1+3+1)
	assert.Equal(t, byte(7), got[0])
	assert.Equal(t, byte(2), got[32])
	assert.Equal(t, []byte{3, 's', 'u', 'i', 3, 'S', 'U', 'I', 0}, got[33:])
}

func TestParseTypeTag_Errors(t *testing.T) {
	for _, input := range []string{"", "vector<u8", "0x2::coin", "0x2::coin::Coin<u8", "u64 extra", "zz::m::N", "0x2::coin::Coin<u8;>"} {
		_, err := ParseTypeTag(input)
		assert.Error(t, err, input)
	}
}
