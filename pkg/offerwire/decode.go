package offerwire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Decode deserializes wire bytes into an OfferMessage. It returns a
// DecodeError when the bytes are malformed or truncated, when the mandatory
// fee payment tx id is empty, and when the direction value is outside the
// enum's domain. Unknown field numbers are skipped. Absent optional fields
// decode to nil, never to an empty container.
func Decode(b []byte) (*OfferMessage, error) {
	msg := &OfferMessage{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErrorf("malformed field tag: %v", protowire.ParseError(n))
		}
		b = b[n:]

		var err error
		switch num {
		case 1:
			msg.Id, b, err = consumeString(num, typ, b)
		case 2:
			var v uint64
			v, b, err = consumeVarint(num, typ, b)
			msg.Date = int64(v)
		case 3:
			msg.OwnerNodeAddress, b, err = consumeNodeAddress(num, typ, b)
		case 4:
			msg.PubKeyRing, b, err = consumePubKeyRing(num, typ, b)
		case 5:
			var v uint64
			v, b, err = consumeVarint(num, typ, b)
			msg.Direction = Direction(v)
		case 6:
			msg.Price, b, err = consumeVarint(num, typ, b)
		case 7:
			msg.MarketPriceMargin, b, err = consumeDouble(num, typ, b)
		case 8:
			msg.UseMarketBasedPrice, b, err = consumeBool(num, typ, b)
		case 9:
			msg.Amount, b, err = consumeVarint(num, typ, b)
		case 10:
			msg.MinAmount, b, err = consumeVarint(num, typ, b)
		case 11:
			msg.BaseCurrencyCode, b, err = consumeString(num, typ, b)
		case 12:
			msg.CounterCurrencyCode, b, err = consumeString(num, typ, b)
		case 13:
			msg.PaymentMethodId, b, err = consumeString(num, typ, b)
		case 14:
			msg.MakerPaymentAccountId, b, err = consumeString(num, typ, b)
		case 15:
			msg.OfferFeePaymentTxId, b, err = consumeString(num, typ, b)
		case 16:
			var s string
			s, b, err = consumeString(num, typ, b)
			msg.CountryCode = &s
		case 17:
			var s string
			s, b, err = consumeString(num, typ, b)
			msg.AcceptedCountryCodes = append(msg.AcceptedCountryCodes, s)
		case 18:
			var s string
			s, b, err = consumeString(num, typ, b)
			msg.BankId = &s
		case 19:
			var s string
			s, b, err = consumeString(num, typ, b)
			msg.AcceptedBankIds = append(msg.AcceptedBankIds, s)
		case 20:
			msg.VersionNr, b, err = consumeString(num, typ, b)
		case 21:
			msg.BlockHeightAtOfferCreation, b, err = consumeVarint(num, typ, b)
		case 22:
			msg.TxFee, b, err = consumeVarint(num, typ, b)
		case 23:
			msg.MakerFee, b, err = consumeVarint(num, typ, b)
		case 24:
			msg.BuyerSecurityDeposit, b, err = consumeVarint(num, typ, b)
		case 25:
			msg.SellerSecurityDeposit, b, err = consumeVarint(num, typ, b)
		case 26:
			msg.MaxTradeLimit, b, err = consumeVarint(num, typ, b)
		case 27:
			var v uint64
			v, b, err = consumeVarint(num, typ, b)
			msg.MaxTradePeriod = int64(v)
		case 28:
			msg.UseAutoClose, b, err = consumeBool(num, typ, b)
		case 29:
			msg.UseReOpenAfterAutoClose, b, err = consumeBool(num, typ, b)
		case 30:
			msg.LowerClosePrice, b, err = consumeVarint(num, typ, b)
		case 31:
			msg.UpperClosePrice, b, err = consumeVarint(num, typ, b)
		case 32:
			msg.IsPrivateOffer, b, err = consumeBool(num, typ, b)
		case 33:
			var s string
			s, b, err = consumeString(num, typ, b)
			msg.HashOfChallenge = &s
		case 34:
			var k, v string
			k, v, b, err = consumeExtraDataEntry(num, typ, b)
			if err == nil {
				if msg.ExtraData == nil {
					msg.ExtraData = make(map[string]string)
				}
				msg.ExtraData[k] = v
			}
		case 35:
			var v uint64
			v, b, err = consumeVarint(num, typ, b)
			msg.ProtocolVersion = uint32(v)
		case 36:
			msg.ArbitratorSigner, b, err = consumeNodeAddress(num, typ, b)
		case 37:
			var s string
			s, b, err = consumeString(num, typ, b)
			msg.ArbitratorSignature = &s
		case 38:
			var s string
			s, b, err = consumeString(num, typ, b)
			msg.ReserveTxKeyImages = append(msg.ReserveTxKeyImages, s)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, decodeErrorf(
					"malformed field %d: %v", num, protowire.ParseError(n),
				)
			}
			b = b[n:]
		}
		if err != nil {
			return nil, err
		}
	}

	if msg.OfferFeePaymentTxId == "" {
		return nil, decodeErrorf("offer fee payment tx id must be set")
	}
	if !msg.Direction.isValid() {
		return nil, decodeErrorf("unrecognized direction %d", msg.Direction)
	}

	return msg, nil
}

func consumeVarint(
	num protowire.Number, typ protowire.Type, b []byte,
) (uint64, []byte, error) {
	if typ != protowire.VarintType {
		return 0, nil, decodeErrorf("field %d: unexpected wire type %d", num, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, decodeErrorf("field %d: %v", num, protowire.ParseError(n))
	}
	return v, b[n:], nil
}

func consumeBool(
	num protowire.Number, typ protowire.Type, b []byte,
) (bool, []byte, error) {
	v, rest, err := consumeVarint(num, typ, b)
	if err != nil {
		return false, nil, err
	}
	return protowire.DecodeBool(v), rest, nil
}

func consumeDouble(
	num protowire.Number, typ protowire.Type, b []byte,
) (float64, []byte, error) {
	if typ != protowire.Fixed64Type {
		return 0, nil, decodeErrorf("field %d: unexpected wire type %d", num, typ)
	}
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, nil, decodeErrorf("field %d: %v", num, protowire.ParseError(n))
	}
	return math.Float64frombits(v), b[n:], nil
}

func consumeBytes(
	num protowire.Number, typ protowire.Type, b []byte,
) ([]byte, []byte, error) {
	if typ != protowire.BytesType {
		return nil, nil, decodeErrorf("field %d: unexpected wire type %d", num, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, decodeErrorf("field %d: %v", num, protowire.ParseError(n))
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, b[n:], nil
}

func consumeString(
	num protowire.Number, typ protowire.Type, b []byte,
) (string, []byte, error) {
	v, rest, err := consumeBytes(num, typ, b)
	if err != nil {
		return "", nil, err
	}
	return string(v), rest, nil
}

func consumeNodeAddress(
	num protowire.Number, typ protowire.Type, b []byte,
) (NodeAddress, []byte, error) {
	raw, rest, err := consumeBytes(num, typ, b)
	if err != nil {
		return NodeAddress{}, nil, err
	}

	var addr NodeAddress
	for len(raw) > 0 {
		subNum, subTyp, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return NodeAddress{}, nil, decodeErrorf(
				"field %d: malformed node address: %v", num, protowire.ParseError(n),
			)
		}
		raw = raw[n:]

		switch subNum {
		case 1:
			addr.HostName, raw, err = consumeString(subNum, subTyp, raw)
		case 2:
			var v uint64
			v, raw, err = consumeVarint(subNum, subTyp, raw)
			addr.Port = uint32(v)
		default:
			n = protowire.ConsumeFieldValue(subNum, subTyp, raw)
			if n < 0 {
				return NodeAddress{}, nil, decodeErrorf(
					"field %d: malformed node address: %v",
					num, protowire.ParseError(n),
				)
			}
			raw = raw[n:]
		}
		if err != nil {
			return NodeAddress{}, nil, err
		}
	}
	return addr, rest, nil
}

func consumePubKeyRing(
	num protowire.Number, typ protowire.Type, b []byte,
) (PubKeyRing, []byte, error) {
	raw, rest, err := consumeBytes(num, typ, b)
	if err != nil {
		return PubKeyRing{}, nil, err
	}

	var ring PubKeyRing
	for len(raw) > 0 {
		subNum, subTyp, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return PubKeyRing{}, nil, decodeErrorf(
				"field %d: malformed pub key ring: %v", num, protowire.ParseError(n),
			)
		}
		raw = raw[n:]

		switch subNum {
		case 1:
			ring.SignaturePubKey, raw, err = consumeBytes(subNum, subTyp, raw)
		case 2:
			ring.EncryptionPubKey, raw, err = consumeBytes(subNum, subTyp, raw)
		default:
			n = protowire.ConsumeFieldValue(subNum, subTyp, raw)
			if n < 0 {
				return PubKeyRing{}, nil, decodeErrorf(
					"field %d: malformed pub key ring: %v",
					num, protowire.ParseError(n),
				)
			}
			raw = raw[n:]
		}
		if err != nil {
			return PubKeyRing{}, nil, err
		}
	}
	return ring, rest, nil
}

func consumeExtraDataEntry(
	num protowire.Number, typ protowire.Type, b []byte,
) (string, string, []byte, error) {
	raw, rest, err := consumeBytes(num, typ, b)
	if err != nil {
		return "", "", nil, err
	}

	var key, value string
	for len(raw) > 0 {
		subNum, subTyp, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return "", "", nil, decodeErrorf(
				"field %d: malformed extra data entry: %v",
				num, protowire.ParseError(n),
			)
		}
		raw = raw[n:]

		switch subNum {
		case 1:
			key, raw, err = consumeString(subNum, subTyp, raw)
		case 2:
			value, raw, err = consumeString(subNum, subTyp, raw)
		default:
			n = protowire.ConsumeFieldValue(subNum, subTyp, raw)
			if n < 0 {
				return "", "", nil, decodeErrorf(
					"field %d: malformed extra data entry: %v",
					num, protowire.ParseError(n),
				)
			}
			raw = raw[n:]
		}
		if err != nil {
			return "", "", nil, err
		}
	}
	return key, value, rest, nil
}
