package offerwire

import (
	"math"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// Encode serializes the message for network storage. It fails with
// ErrFeeTxIDNotSet if the mandatory fee payment tx id is empty, the
// publication precondition of the record.
func Encode(msg *OfferMessage) ([]byte, error) {
	if msg.OfferFeePaymentTxId == "" {
		return nil, ErrFeeTxIDNotSet
	}
	return Marshal(msg), nil
}

// Marshal serializes the message without enforcing the publication
// precondition. It is meant for computing the record's content hash, where
// the fee tx id may still be unset on the maker's local copy.
//
// Fields are emitted in ascending field-number order and map entries in
// lexicographic key order, so identical logical content always marshals to
// identical bytes.
func Marshal(msg *OfferMessage) []byte {
	b := make([]byte, 0, 512)

	b = appendStringField(b, 1, msg.Id)
	b = appendVarintField(b, 2, uint64(msg.Date))
	b = appendNodeAddressField(b, 3, msg.OwnerNodeAddress)
	b = appendPubKeyRingField(b, 4, msg.PubKeyRing)
	b = appendVarintField(b, 5, uint64(msg.Direction))
	b = appendVarintField(b, 6, msg.Price)
	b = appendDoubleField(b, 7, msg.MarketPriceMargin)
	b = appendBoolField(b, 8, msg.UseMarketBasedPrice)
	b = appendVarintField(b, 9, msg.Amount)
	b = appendVarintField(b, 10, msg.MinAmount)
	b = appendStringField(b, 11, msg.BaseCurrencyCode)
	b = appendStringField(b, 12, msg.CounterCurrencyCode)
	b = appendStringField(b, 13, msg.PaymentMethodId)
	b = appendStringField(b, 14, msg.MakerPaymentAccountId)
	b = appendStringField(b, 15, msg.OfferFeePaymentTxId)
	if msg.CountryCode != nil {
		b = appendStringField(b, 16, *msg.CountryCode)
	}
	b = appendStringList(b, 17, msg.AcceptedCountryCodes)
	if msg.BankId != nil {
		b = appendStringField(b, 18, *msg.BankId)
	}
	b = appendStringList(b, 19, msg.AcceptedBankIds)
	b = appendStringField(b, 20, msg.VersionNr)
	b = appendVarintField(b, 21, msg.BlockHeightAtOfferCreation)
	b = appendVarintField(b, 22, msg.TxFee)
	b = appendVarintField(b, 23, msg.MakerFee)
	b = appendVarintField(b, 24, msg.BuyerSecurityDeposit)
	b = appendVarintField(b, 25, msg.SellerSecurityDeposit)
	b = appendVarintField(b, 26, msg.MaxTradeLimit)
	b = appendVarintField(b, 27, uint64(msg.MaxTradePeriod))
	b = appendBoolField(b, 28, msg.UseAutoClose)
	b = appendBoolField(b, 29, msg.UseReOpenAfterAutoClose)
	b = appendVarintField(b, 30, msg.LowerClosePrice)
	b = appendVarintField(b, 31, msg.UpperClosePrice)
	b = appendBoolField(b, 32, msg.IsPrivateOffer)
	if msg.HashOfChallenge != nil {
		b = appendStringField(b, 33, *msg.HashOfChallenge)
	}
	b = appendExtraData(b, 34, msg.ExtraData)
	b = appendVarintField(b, 35, uint64(msg.ProtocolVersion))
	b = appendNodeAddressField(b, 36, msg.ArbitratorSigner)
	if msg.ArbitratorSignature != nil {
		b = appendStringField(b, 37, *msg.ArbitratorSignature)
	}
	b = appendStringList(b, 38, msg.ReserveTxKeyImages)

	return b
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	return appendVarintField(b, num, protowire.EncodeBool(v))
}

func appendDoubleField(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringList(b []byte, num protowire.Number, list []string) []byte {
	for _, s := range list {
		b = appendStringField(b, num, s)
	}
	return b
}

func appendNodeAddressField(b []byte, num protowire.Number, addr NodeAddress) []byte {
	sub := make([]byte, 0, len(addr.HostName)+8)
	sub = appendStringField(sub, 1, addr.HostName)
	sub = appendVarintField(sub, 2, uint64(addr.Port))
	return appendBytesField(b, num, sub)
}

func appendPubKeyRingField(b []byte, num protowire.Number, ring PubKeyRing) []byte {
	sub := make([]byte, 0, len(ring.SignaturePubKey)+len(ring.EncryptionPubKey)+8)
	sub = appendBytesField(sub, 1, ring.SignaturePubKey)
	sub = appendBytesField(sub, 2, ring.EncryptionPubKey)
	return appendBytesField(b, num, sub)
}

func appendExtraData(b []byte, num protowire.Number, m map[string]string) []byte {
	if len(m) == 0 {
		return b
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		entry := make([]byte, 0, len(k)+len(m[k])+8)
		entry = appendStringField(entry, 1, k)
		entry = appendStringField(entry, 2, m[k])
		b = appendBytesField(b, num, entry)
	}
	return b
}
