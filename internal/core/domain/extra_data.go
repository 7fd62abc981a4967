package domain

import "sort"

// Well-known extra data keys. The extra data map is the forward-compatible
// extension point of the offer record: new metadata propagates through it
// without changing the wire schema or breaking the content hash semantics for
// nodes that don't understand the new keys.
const (
	// ExtraDataAccountAgeWitnessHash is only set for fiat offers.
	ExtraDataAccountAgeWitnessHash = "accountAgeWitnessHash"
	ExtraDataReferralId            = "referralId"
	// ExtraDataF2FCity and ExtraDataF2FExtraInfo are only used with the
	// face-to-face payment method.
	ExtraDataF2FCity             = "f2fCity"
	ExtraDataF2FExtraInfo        = "f2fExtraInfo"
	ExtraDataCashByMailExtraInfo = "cashByMailExtraInfo"
	// ExtraDataCapabilities is a comma separated list of capability ordinals
	// supported by the maker.
	ExtraDataCapabilities = "capabilities"
	// ExtraDataAutoConf is set to ExtraDataAutoConfEnabled when the maker
	// sells with automatic trade confirmation enabled, otherwise it is unset.
	ExtraDataAutoConf        = "xmrAutoConf"
	ExtraDataAutoConfEnabled = "1"
)

// Bounds enforced on the extra data map so that the extension point cannot
// become an unbounded or adversarial payload amplifier.
const (
	MaxExtraDataEntries     = 10
	MaxExtraDataKeyLength   = 100
	MaxExtraDataValueLength = 100000
)

// ValidatedExtraData returns a copy of the given map with all invalid entries
// dropped. An entry is invalid if its key or value exceeds the length bounds
// or contains non-printable-ASCII characters. When more than
// MaxExtraDataEntries valid entries remain, only the first ones in
// lexicographic key order are kept, so the outcome does not depend on map
// iteration order. An empty result normalizes to nil: a record whose extra
// data was entirely invalid hashes identically to one that never had any.
func ValidatedExtraData(extraData map[string]string) map[string]string {
	if extraData == nil {
		return nil
	}

	keys := make([]string, 0, len(extraData))
	for k := range extraData {
		if isValidExtraDataEntry(k, extraData[k]) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	if len(keys) > MaxExtraDataEntries {
		keys = keys[:MaxExtraDataEntries]
	}

	validated := make(map[string]string, len(keys))
	for _, k := range keys {
		validated[k] = extraData[k]
	}
	return validated
}

func isValidExtraDataEntry(key, value string) bool {
	if len(key) == 0 || len(key) > MaxExtraDataKeyLength {
		return false
	}
	if len(value) > MaxExtraDataValueLength {
		return false
	}
	return isPrintableASCII(key) && isPrintableASCII(value)
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
