package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/offerbook-network/offerbook-daemon/pkg/offerwire"
)

func TestNewOffer(t *testing.T) {
	t.Parallel()

	offer, err := domain.NewOffer(newTestOffer())
	require.NoError(t, err)
	require.NotNil(t, offer)
	require.NoError(t, offer.Validate())
}

func TestNewOfferValidatesExtraData(t *testing.T) {
	t.Parallel()

	fields := newTestOffer()
	fields.ExtraData = map[string]string{
		domain.ExtraDataReferralId: "ref-1",
		"binary\x00key":            "dropped",
	}

	offer, err := domain.NewOffer(fields)
	require.NoError(t, err)
	require.Equal(
		t, map[string]string{domain.ExtraDataReferralId: "ref-1"}, offer.ExtraData,
	)
}

func TestFailingNewOfferPrivateWithoutChallenge(t *testing.T) {
	t.Parallel()

	fields := newTestOffer()
	fields.IsPrivateOffer = true
	fields.HashOfChallenge = ""

	offer, err := domain.NewOffer(fields)
	require.Nil(t, offer)
	require.EqualError(t, err, domain.ErrOfferMissingChallengeHash.Error())
}

func TestFailingValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		alter         func(o *domain.Offer)
		expectedError error
	}{
		{
			name:          "empty_id",
			alter:         func(o *domain.Offer) { o.Id = "" },
			expectedError: domain.ErrOfferInvalidId,
		},
		{
			name:          "invalid_direction",
			alter:         func(o *domain.Offer) { o.Direction = domain.Direction(3) },
			expectedError: domain.ErrOfferInvalidDirection,
		},
		{
			name:          "zero_amount",
			alter:         func(o *domain.Offer) { o.Amount = 0 },
			expectedError: domain.ErrOfferAmountNotPositive,
		},
		{
			name:          "zero_min_amount",
			alter:         func(o *domain.Offer) { o.MinAmount = 0 },
			expectedError: domain.ErrOfferMinAmountNotPositive,
		},
		{
			name:          "min_amount_above_amount",
			alter:         func(o *domain.Offer) { o.MinAmount = o.Amount + 1 },
			expectedError: domain.ErrOfferMinAmountTooHigh,
		},
		{
			name: "fixed_price_with_margin",
			alter: func(o *domain.Offer) {
				o.UseMarketBasedPrice = false
				o.MarketPriceMargin = 0.05
			},
			expectedError: domain.ErrOfferAmbiguousPrice,
		},
		{
			name: "market_price_with_fixed_price",
			alter: func(o *domain.Offer) {
				o.UseMarketBasedPrice = true
				o.Price = 4000000
			},
			expectedError: domain.ErrOfferAmbiguousPrice,
		},
		{
			name:          "missing_asset_codes",
			alter:         func(o *domain.Offer) { o.CounterCurrencyCode = "" },
			expectedError: domain.ErrOfferMissingAssetCodes,
		},
		{
			name:          "missing_owner_address",
			alter:         func(o *domain.Offer) { o.OwnerNodeAddress = domain.NodeAddress{} },
			expectedError: domain.ErrOfferMissingOwnerAddress,
		},
		{
			name: "missing_owner_pub_key",
			alter: func(o *domain.Offer) {
				o.OwnerPubKeyRing.SignaturePubKey = nil
			},
			expectedError: domain.ErrOfferMissingOwnerPubKey,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := newTestOffer()
			tt.alter(&fields)
			offer, err := domain.NewOffer(fields)
			require.NoError(t, err)
			require.EqualError(t, offer.Validate(), tt.expectedError.Error())
		})
	}
}

func TestCurrencyCode(t *testing.T) {
	t.Parallel()

	fiat := newTestOffer()
	fiat.BaseCurrencyCode = "XMR"
	fiat.CounterCurrencyCode = "USD"
	fiatOffer, err := domain.NewOffer(fiat)
	require.NoError(t, err)
	require.Equal(t, "USD", fiatOffer.CurrencyCode())

	crypto := newTestOffer()
	crypto.BaseCurrencyCode = "BTC"
	crypto.CounterCurrencyCode = "XMR"
	cryptoOffer, err := domain.NewOffer(crypto)
	require.NoError(t, err)
	require.Equal(t, "BTC", cryptoOffer.CurrencyCode())
}

func TestSetFeeTxID(t *testing.T) {
	t.Parallel()

	offer, err := domain.NewOffer(newTestOffer())
	require.NoError(t, err)

	err = offer.SetFeeTxID("")
	require.EqualError(t, err, domain.ErrOfferFeeTxEmpty.Error())

	err = offer.SetFeeTxID("abc123")
	require.NoError(t, err)
	require.Equal(t, "abc123", offer.FeePaymentTxId)

	err = offer.SetFeeTxID("def456")
	require.EqualError(t, err, domain.ErrOfferFeeTxAlreadySet.Error())
	require.Equal(t, "abc123", offer.FeePaymentTxId)
}

func TestPayloadCapabilities(t *testing.T) {
	t.Parallel()

	offer, err := domain.NewOffer(newTestOffer())
	require.NoError(t, err)

	require.Equal(t, 9*time.Minute, offer.TTL())
	require.True(t, offer.OwnerMustBeOnline())
	require.Equal(t, offer.OwnerNodeAddress, offer.OwnerAddress())
	require.Equal(t, offer.OwnerPubKeyRing.SignaturePubKey, offer.OwnerPubKey())
}

func TestHashIdentity(t *testing.T) {
	t.Parallel()

	one, err := domain.NewOffer(newTestOffer())
	require.NoError(t, err)
	two, err := domain.NewOffer(newTestOffer())
	require.NoError(t, err)

	require.Equal(t, one.Hash(), two.Hash())
	require.True(t, one.Equal(two))

	// Extra data insertion order must not matter.
	withExtra := newTestOffer()
	withExtra.ExtraData = map[string]string{}
	withExtra.ExtraData[domain.ExtraDataReferralId] = "ref-1"
	withExtra.ExtraData[domain.ExtraDataAccountAgeWitnessHash] = "aabbcc"
	first, err := domain.NewOffer(withExtra)
	require.NoError(t, err)

	reordered := newTestOffer()
	reordered.ExtraData = map[string]string{}
	reordered.ExtraData[domain.ExtraDataAccountAgeWitnessHash] = "aabbcc"
	reordered.ExtraData[domain.ExtraDataReferralId] = "ref-1"
	second, err := domain.NewOffer(reordered)
	require.NoError(t, err)

	require.Equal(t, first.Hash(), second.Hash())

	// An entirely invalid extra data map is identical, in identity hash
	// terms, to never having had extra data.
	invalid := newTestOffer()
	invalid.ExtraData = map[string]string{"bad\x00key": "value"}
	normalized, err := domain.NewOffer(invalid)
	require.NoError(t, err)
	require.Equal(t, one.Hash(), normalized.Hash())
	require.True(t, one.Equal(normalized))
}

func TestHashChangesWithAnyField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		alter func(o *domain.Offer)
	}{
		{"id", func(o *domain.Offer) { o.Id = "other" }},
		{"created_at", func(o *domain.Offer) { o.CreatedAt++ }},
		{"direction", func(o *domain.Offer) { o.Direction = domain.DirectionBuy }},
		{"price", func(o *domain.Offer) { o.Price++ }},
		{"amount", func(o *domain.Offer) { o.Amount++ }},
		{"min_amount", func(o *domain.Offer) { o.MinAmount++ }},
		{"fee_tx_id", func(o *domain.Offer) { o.FeePaymentTxId = "zzz" }},
		{"country_code", func(o *domain.Offer) { o.CountryCode = "DE" }},
		{"bank_id", func(o *domain.Offer) { o.BankId = "DEUTDEFF" }},
		{"extra_data", func(o *domain.Offer) {
			o.ExtraData = map[string]string{domain.ExtraDataReferralId: "x"}
		}},
		{"arbitrator_signature", func(o *domain.Offer) { o.ArbitratorSignature = "sig" }},
		{"reserve_tx_key_images", func(o *domain.Offer) {
			o.ReserveTxKeyImages = []string{"ki1"}
		}},
	}

	base, err := domain.NewOffer(newTestOffer())
	require.NoError(t, err)

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := newTestOffer()
			tt.alter(&fields)
			altered, err := domain.NewOffer(fields)
			require.NoError(t, err)
			require.NotEqual(t, base.Hash(), altered.Hash())
			require.False(t, base.Equal(altered))
		})
	}
}

func TestSerializeRequiresFeeTx(t *testing.T) {
	t.Parallel()

	// The maker assembles a SELL offer before the fee payment confirmed.
	fields := newTestOffer()
	fields.FeePaymentTxId = ""
	offer, err := domain.NewOffer(fields)
	require.NoError(t, err)

	_, err = offer.Serialize()
	require.ErrorIs(t, err, offerwire.ErrFeeTxIDNotSet)

	// Once the fee payment confirms the offer becomes publishable and
	// round-trips field for field.
	require.NoError(t, offer.SetFeeTxID("abc123"))

	buf, err := offer.Serialize()
	require.NoError(t, err)

	decoded, err := domain.DeserializeOffer(buf)
	require.NoError(t, err)
	require.Equal(t, offer, decoded)
	require.True(t, offer.Equal(decoded))
}

func TestSerializeRoundTripWithOptionals(t *testing.T) {
	t.Parallel()

	fields := newTestOffer()
	fields.CountryCode = "DE"
	fields.AcceptedCountryCodes = []string{"DE", "FR"}
	fields.BankId = "DEUTDEFF"
	fields.AcceptedBankIds = []string{"DEUTDEFF"}
	fields.IsPrivateOffer = true
	fields.HashOfChallenge = "deadbeef"
	fields.ExtraData = map[string]string{domain.ExtraDataF2FCity: "Berlin"}
	fields.ArbitratorSignature = "3044..."
	fields.ReserveTxKeyImages = []string{"ki1", "ki2"}

	offer, err := domain.NewOffer(fields)
	require.NoError(t, err)

	buf, err := offer.Serialize()
	require.NoError(t, err)

	decoded, err := domain.DeserializeOffer(buf)
	require.NoError(t, err)
	require.Equal(t, offer, decoded)
}

func TestResolvePrice(t *testing.T) {
	t.Parallel()

	fixed := newTestOffer()
	fixedOffer, err := domain.NewOffer(fixed)
	require.NoError(t, err)
	require.True(
		t,
		decimal.NewFromInt(4000000).Equal(
			fixedOffer.ResolvePrice(decimal.NewFromInt(123)),
		),
	)

	market := newTestOffer()
	market.UseMarketBasedPrice = true
	market.Price = 0
	market.MarketPriceMargin = 0.1

	sellFields := market
	sellFields.Direction = domain.DirectionSell
	sell, err := domain.NewOffer(sellFields)
	require.NoError(t, err)
	require.True(
		t,
		decimal.NewFromInt(440).Equal(sell.ResolvePrice(decimal.NewFromInt(400))),
	)

	buyFields := market
	buyFields.Direction = domain.DirectionBuy
	buy, err := domain.NewOffer(buyFields)
	require.NoError(t, err)
	require.True(
		t,
		decimal.NewFromInt(360).Equal(buy.ResolvePrice(decimal.NewFromInt(400))),
	)
}

func TestDirectionFromName(t *testing.T) {
	t.Parallel()

	buy, err := domain.DirectionFromName("BUY")
	require.NoError(t, err)
	require.Equal(t, domain.DirectionBuy, buy)

	sell, err := domain.DirectionFromName("SELL")
	require.NoError(t, err)
	require.Equal(t, domain.DirectionSell, sell)

	_, err = domain.DirectionFromName("HODL")
	require.EqualError(t, err, domain.ErrOfferInvalidDirection.Error())
}

func TestParseNodeAddress(t *testing.T) {
	t.Parallel()

	addr, err := domain.ParseNodeAddress("maker.onion:9999")
	require.NoError(t, err)
	require.Equal(t, domain.NodeAddress{HostName: "maker.onion", Port: 9999}, addr)
	require.Equal(t, "maker.onion:9999", addr.String())

	for _, raw := range []string{"", "no-port", ":9999", "host:notaport"} {
		_, err := domain.ParseNodeAddress(raw)
		require.EqualError(t, err, domain.ErrInvalidNodeAddress.Error())
	}
}

func TestBookEntryExpiry(t *testing.T) {
	t.Parallel()

	offer, err := domain.NewOffer(newTestOffer())
	require.NoError(t, err)

	now := time.Now()
	entry := domain.NewBookEntry(offer, now)
	require.Equal(t, offer.HashHex(), entry.Hash)
	require.Equal(t, offer.CurrencyCode(), entry.CurrencyCode)
	require.False(t, entry.IsExpired(now))
	require.False(t, entry.IsExpired(now.Add(domain.OfferTTL-time.Second)))
	require.True(t, entry.IsExpired(now.Add(domain.OfferTTL)))

	later := now.Add(5 * time.Minute)
	entry.Refresh(later)
	require.False(t, entry.IsExpired(now.Add(domain.OfferTTL)))
	require.True(t, entry.IsExpired(later.Add(domain.OfferTTL)))
}

func newTestOffer() domain.Offer {
	return domain.Offer{
		Id:        "4c2154f6-13a9-4e9a-bc2e-4e2874d2c0cf",
		CreatedAt: 1724668800000,
		OwnerNodeAddress: domain.NodeAddress{
			HostName: "maker.onion",
			Port:     9999,
		},
		OwnerPubKeyRing: domain.NewPubKeyRing(
			[]byte{0x02, 0x01, 0x02, 0x03}, []byte{0x03, 0x04, 0x05, 0x06},
		),
		Direction:             domain.DirectionSell,
		Price:                 4000000,
		UseMarketBasedPrice:   false,
		Amount:                500000,
		MinAmount:             100000,
		BaseCurrencyCode:      "XMR",
		CounterCurrencyCode:   "USD",
		PaymentMethodId:       "SEPA",
		MakerPaymentAccountId: "account-1",
		FeePaymentTxId:        "abc123",
		VersionNr:             "1.0.0",
		BlockHeightAtCreation: 2871000,
		TxFee:                 1000,
		MakerFee:              2000,
		BuyerSecurityDeposit:  50000,
		SellerSecurityDeposit: 50000,
		MaxTradeLimit:         500000,
		MaxTradePeriod:        86400000,
		ProtocolVersion:       1,
		ArbitratorSigner: domain.NodeAddress{
			HostName: "arbitrator.onion",
			Port:     9998,
		},
	}
}
