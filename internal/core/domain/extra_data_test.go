package domain_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
)

func TestValidatedExtraData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       map[string]string
		expected map[string]string
	}{
		{
			name:     "nil_map",
			in:       nil,
			expected: nil,
		},
		{
			name:     "empty_map",
			in:       map[string]string{},
			expected: nil,
		},
		{
			name: "valid_entries_pass_through",
			in: map[string]string{
				domain.ExtraDataReferralId: "ref-1",
				domain.ExtraDataF2FCity:    "Berlin",
			},
			expected: map[string]string{
				domain.ExtraDataReferralId: "ref-1",
				domain.ExtraDataF2FCity:    "Berlin",
			},
		},
		{
			name: "unknown_keys_are_preserved",
			in: map[string]string{
				"someFutureKey": "value",
			},
			expected: map[string]string{
				"someFutureKey": "value",
			},
		},
		{
			name: "oversized_key_is_dropped_not_fatal",
			in: map[string]string{
				strings.Repeat("k", domain.MaxExtraDataKeyLength+1): "value",
				domain.ExtraDataReferralId:                          "ref-1",
			},
			expected: map[string]string{
				domain.ExtraDataReferralId: "ref-1",
			},
		},
		{
			name: "oversized_value_is_dropped",
			in: map[string]string{
				domain.ExtraDataF2FExtraInfo: strings.Repeat(
					"v", domain.MaxExtraDataValueLength+1,
				),
				domain.ExtraDataReferralId: "ref-1",
			},
			expected: map[string]string{
				domain.ExtraDataReferralId: "ref-1",
			},
		},
		{
			name: "empty_key_is_dropped",
			in: map[string]string{
				"":                         "value",
				domain.ExtraDataReferralId: "ref-1",
			},
			expected: map[string]string{
				domain.ExtraDataReferralId: "ref-1",
			},
		},
		{
			name: "non_printable_characters_are_dropped",
			in: map[string]string{
				"bad\x00key":               "value",
				domain.ExtraDataReferralId: "caf\xc3\xa9",
			},
			expected: nil,
		},
		{
			name: "all_invalid_normalizes_to_nil",
			in: map[string]string{
				strings.Repeat("k", domain.MaxExtraDataKeyLength+1): "value",
			},
			expected: nil,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.expected, domain.ValidatedExtraData(tt.in))
		})
	}
}

func TestValidatedExtraDataBoundsEntryCount(t *testing.T) {
	t.Parallel()

	in := make(map[string]string)
	for i := 0; i < domain.MaxExtraDataEntries+5; i++ {
		in[fmt.Sprintf("key-%02d", i)] = "value"
	}

	out := domain.ValidatedExtraData(in)
	require.Len(t, out, domain.MaxExtraDataEntries)

	// Lexicographically first keys survive, so the outcome is deterministic.
	for i := 0; i < domain.MaxExtraDataEntries; i++ {
		require.Contains(t, out, fmt.Sprintf("key-%02d", i))
	}
}

func TestValidatedExtraDataDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := map[string]string{
		domain.ExtraDataReferralId: "ref-1",
		"bad\x00key":               "value",
	}
	_ = domain.ValidatedExtraData(in)
	require.Len(t, in, 2)
}
