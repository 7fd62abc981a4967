package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"

	"github.com/offerbook-network/offerbook-daemon/pkg/offerwire"
)

// OfferTTL is the time to live of a published offer record. The storage
// overlay computes the absolute expiry at the moment of storage, so every
// re-store of a gossiped copy refreshes its lifetime.
const OfferTTL = 9 * time.Minute

// PrimarySettlementAsset is the network's primary settlement asset. For fiat
// offers it occupies the base leg, for non-primary-asset offers the counter
// leg.
const PrimarySettlementAsset = "XMR"

// Direction of an offer from the maker's point of view.
type Direction int

const (
	DirectionBuy Direction = iota
	DirectionSell
)

var directionNames = map[Direction]string{
	DirectionBuy:  "BUY",
	DirectionSell: "SELL",
}

func (d Direction) String() string {
	return directionNames[d]
}

// IsValid returns whether the direction is one of the two enum values.
func (d Direction) IsValid() bool {
	_, ok := directionNames[d]
	return ok
}

// DirectionFromName maps a direction name to the domain enum independently of
// the wire enum's ordering. An unrecognized name is an error, never a silent
// default.
func DirectionFromName(name string) (Direction, error) {
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return 0, ErrOfferInvalidDirection
}

// Offer is the data structure representing a maker's standing offer to buy or
// sell a base asset against a counter asset, as it is gossiped, stored and
// eventually evicted across the storage overlay.
//
// All fields are frozen at construction except FeePaymentTxId, which is set
// exactly once through SetFeeTxID when the maker's fee payment confirms.
// Callers serialize that single write with any concurrent read. Any other
// mutation after publication invalidates previously distributed signatures
// and must be treated as a new record.
type Offer struct {
	Id               string
	CreatedAt        int64 // milliseconds since epoch
	OwnerNodeAddress NodeAddress
	OwnerPubKeyRing  PubKeyRing
	Direction        Direction
	// Price is the fixed price in the smallest unit of the counter asset when
	// UseMarketBasedPrice is false, otherwise 0.
	Price uint64
	// MarketPriceMargin is the distance from the reference market price when
	// UseMarketBasedPrice is true, otherwise 0. E.g. 0.1 -> 10%. Can be
	// negative.
	MarketPriceMargin   float64
	UseMarketBasedPrice bool
	// Amount and MinAmount are expressed in the smallest indivisible unit of
	// the base asset.
	Amount    uint64
	MinAmount uint64
	// For fiat offers the base asset is the primary settlement asset and the
	// counter asset the fiat currency. For other offers it is the opposite.
	BaseCurrencyCode      string
	CounterCurrencyCode   string
	PaymentMethodId       string
	MakerPaymentAccountId string
	// FeePaymentTxId has to be set before the offer is handed to the storage
	// overlay, as serializing without it is a precondition failure.
	FeePaymentTxId        string
	CountryCode           string
	AcceptedCountryCodes  []string
	BankId                string
	AcceptedBankIds       []string
	VersionNr             string
	BlockHeightAtCreation uint64
	TxFee                 uint64
	MakerFee              uint64
	BuyerSecurityDeposit  uint64
	SellerSecurityDeposit uint64
	MaxTradeLimit         uint64
	MaxTradePeriod        int64 // milliseconds

	// Reserved for future use: auto close the offer when a close price is
	// reached, optionally re-opening it with the remaining funds.
	UseAutoClose            bool
	UseReOpenAfterAutoClose bool
	LowerClosePrice         uint64
	UpperClosePrice         uint64

	// IsPrivateOffer requires a taker to prove knowledge of a pre-shared
	// secret whose hash matches HashOfChallenge.
	IsPrivateOffer  bool
	HashOfChallenge string

	ExtraData       map[string]string
	ProtocolVersion uint32

	ArbitratorSigner    NodeAddress
	ArbitratorSignature string
	ReserveTxKeyImages  []string
}

// NewOffer returns an offer with its extra data map passed through the
// structural validator, substituting the cleaned map (or none) for an invalid
// one. A private offer without a challenge hash is rejected. Business-level
// consistency of the remaining fields is checked by Validate.
func NewOffer(offer Offer) (*Offer, error) {
	if offer.IsPrivateOffer && offer.HashOfChallenge == "" {
		return nil, ErrOfferMissingChallengeHash
	}

	offer.ExtraData = ValidatedExtraData(offer.ExtraData)
	return &offer, nil
}

// Validate checks the business invariants of the offer. The maker service
// enforces them before publication and storing nodes re-check them on
// receipt.
func (o *Offer) Validate() error {
	if o.Id == "" {
		return ErrOfferInvalidId
	}
	if !o.Direction.IsValid() {
		return ErrOfferInvalidDirection
	}
	if o.Amount == 0 {
		return ErrOfferAmountNotPositive
	}
	if o.MinAmount == 0 {
		return ErrOfferMinAmountNotPositive
	}
	if o.MinAmount > o.Amount {
		return ErrOfferMinAmountTooHigh
	}
	if o.UseMarketBasedPrice && o.Price != 0 {
		return ErrOfferAmbiguousPrice
	}
	if !o.UseMarketBasedPrice && o.MarketPriceMargin != 0 {
		return ErrOfferAmbiguousPrice
	}
	if o.BaseCurrencyCode == "" || o.CounterCurrencyCode == "" {
		return ErrOfferMissingAssetCodes
	}
	if o.OwnerNodeAddress.IsEmpty() {
		return ErrOfferMissingOwnerAddress
	}
	if len(o.OwnerPubKeyRing.SignaturePubKey) == 0 {
		return ErrOfferMissingOwnerPubKey
	}
	if o.IsPrivateOffer && o.HashOfChallenge == "" {
		return ErrOfferMissingChallengeHash
	}
	return nil
}

// SetFeeTxID sets the fee payment tx id, the only field allowed to change
// after construction. It transitions from absent to present exactly once.
func (o *Offer) SetFeeTxID(txid string) error {
	if txid == "" {
		return ErrOfferFeeTxEmpty
	}
	if o.FeePaymentTxId != "" {
		return ErrOfferFeeTxAlreadySet
	}
	o.FeePaymentTxId = txid
	return nil
}

// TTL implements ExpirablePayload.
func (o *Offer) TTL() time.Duration {
	return OfferTTL
}

// OwnerPubKey implements StoragePayload. The overlay verifies against this
// key that operations claiming to originate from the owner are authentically
// signed by the same key that published the record.
func (o *Offer) OwnerPubKey() []byte {
	return o.OwnerPubKeyRing.SignaturePubKey
}

// OwnerMustBeOnline implements RequiresOwnerIsOnline. It holds
// unconditionally for offer records.
func (o *Offer) OwnerMustBeOnline() bool {
	return true
}

// OwnerAddress implements RequiresOwnerIsOnline.
func (o *Offer) OwnerAddress() NodeAddress {
	return o.OwnerNodeAddress
}

// CurrencyCode returns whichever of the two asset codes is not the primary
// settlement asset, so that callers can treat fiat and non-primary-asset
// offers uniformly.
func (o *Offer) CurrencyCode() string {
	if o.BaseCurrencyCode == PrimarySettlementAsset {
		return o.CounterCurrencyCode
	}
	return o.BaseCurrencyCode
}

// ResolvePrice returns the effective price of the offer given the current
// reference market price, expressed in the same unit as the reference. For a
// fixed price offer the reference is ignored. For a market based offer a
// positive margin improves the maker's side: a buy offer resolves below the
// market price, a sell offer above it.
func (o *Offer) ResolvePrice(referencePrice decimal.Decimal) decimal.Decimal {
	if !o.UseMarketBasedPrice {
		return decimal.NewFromInt(int64(o.Price))
	}

	margin := decimal.NewFromFloat(o.MarketPriceMargin)
	factor := decimal.NewFromInt(1).Add(margin)
	if o.Direction == DirectionBuy {
		factor = decimal.NewFromInt(1).Sub(margin)
	}
	return referencePrice.Mul(factor)
}

// Hash returns the record's content hash, used for deduplication, signature
// binding and storage overlay keying. It covers every field of the record by
// digesting its canonical wire encoding.
func (o *Offer) Hash() []byte {
	h := sha256.Sum256(offerwire.Marshal(o.WireMessage()))
	return h[:]
}

// HashHex returns the content hash in hex form, the overlay's storage key.
func (o *Offer) HashHex() string {
	return hex.EncodeToString(o.Hash())
}

// Equal reports whether the two records carry identical content. Equality is
// the sole correctness criterion for deduplication in the storage overlay.
func (o *Offer) Equal(other *Offer) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(o.Hash(), other.Hash())
}

// WireMessage maps the offer to its wire message. Nullable fields that are
// unset map to absent, never to present-but-empty.
func (o *Offer) WireMessage() *offerwire.OfferMessage {
	msg := &offerwire.OfferMessage{
		Id:   o.Id,
		Date: o.CreatedAt,
		OwnerNodeAddress: offerwire.NodeAddress{
			HostName: o.OwnerNodeAddress.HostName,
			Port:     o.OwnerNodeAddress.Port,
		},
		PubKeyRing: offerwire.PubKeyRing{
			SignaturePubKey:  o.OwnerPubKeyRing.SignaturePubKey,
			EncryptionPubKey: o.OwnerPubKeyRing.EncryptionPubKey,
		},
		Direction:                  offerwire.Direction(o.Direction),
		Price:                      o.Price,
		MarketPriceMargin:          o.MarketPriceMargin,
		UseMarketBasedPrice:        o.UseMarketBasedPrice,
		Amount:                     o.Amount,
		MinAmount:                  o.MinAmount,
		BaseCurrencyCode:           o.BaseCurrencyCode,
		CounterCurrencyCode:        o.CounterCurrencyCode,
		PaymentMethodId:            o.PaymentMethodId,
		MakerPaymentAccountId:      o.MakerPaymentAccountId,
		OfferFeePaymentTxId:        o.FeePaymentTxId,
		AcceptedCountryCodes:       copyStrings(o.AcceptedCountryCodes),
		AcceptedBankIds:            copyStrings(o.AcceptedBankIds),
		VersionNr:                  o.VersionNr,
		BlockHeightAtOfferCreation: o.BlockHeightAtCreation,
		TxFee:                      o.TxFee,
		MakerFee:                   o.MakerFee,
		BuyerSecurityDeposit:       o.BuyerSecurityDeposit,
		SellerSecurityDeposit:      o.SellerSecurityDeposit,
		MaxTradeLimit:              o.MaxTradeLimit,
		MaxTradePeriod:             o.MaxTradePeriod,
		UseAutoClose:               o.UseAutoClose,
		UseReOpenAfterAutoClose:    o.UseReOpenAfterAutoClose,
		LowerClosePrice:            o.LowerClosePrice,
		UpperClosePrice:            o.UpperClosePrice,
		IsPrivateOffer:             o.IsPrivateOffer,
		ExtraData:                  copyExtraData(o.ExtraData),
		ProtocolVersion:            o.ProtocolVersion,
		ArbitratorSigner: offerwire.NodeAddress{
			HostName: o.ArbitratorSigner.HostName,
			Port:     o.ArbitratorSigner.Port,
		},
	}

	if o.CountryCode != "" {
		countryCode := o.CountryCode
		msg.CountryCode = &countryCode
	}
	if o.BankId != "" {
		bankId := o.BankId
		msg.BankId = &bankId
	}
	if o.HashOfChallenge != "" {
		hashOfChallenge := o.HashOfChallenge
		msg.HashOfChallenge = &hashOfChallenge
	}
	if o.ArbitratorSignature != "" {
		arbitratorSignature := o.ArbitratorSignature
		msg.ArbitratorSignature = &arbitratorSignature
	}
	msg.ReserveTxKeyImages = copyStrings(o.ReserveTxKeyImages)

	return msg
}

// OfferFromWireMessage maps a decoded wire message back to the domain record,
// running the structural validation of NewOffer. The direction is mapped
// through its schema name so the result does not depend on enum ordering.
func OfferFromWireMessage(msg *offerwire.OfferMessage) (*Offer, error) {
	direction, err := DirectionFromName(msg.Direction.Name())
	if err != nil {
		return nil, err
	}

	offer := Offer{
		Id:        msg.Id,
		CreatedAt: msg.Date,
		OwnerNodeAddress: NodeAddress{
			HostName: msg.OwnerNodeAddress.HostName,
			Port:     msg.OwnerNodeAddress.Port,
		},
		OwnerPubKeyRing: PubKeyRing{
			SignaturePubKey:  msg.PubKeyRing.SignaturePubKey,
			EncryptionPubKey: msg.PubKeyRing.EncryptionPubKey,
		},
		Direction:             direction,
		Price:                 msg.Price,
		MarketPriceMargin:     msg.MarketPriceMargin,
		UseMarketBasedPrice:   msg.UseMarketBasedPrice,
		Amount:                msg.Amount,
		MinAmount:             msg.MinAmount,
		BaseCurrencyCode:      msg.BaseCurrencyCode,
		CounterCurrencyCode:   msg.CounterCurrencyCode,
		PaymentMethodId:       msg.PaymentMethodId,
		MakerPaymentAccountId: msg.MakerPaymentAccountId,
		FeePaymentTxId:        msg.OfferFeePaymentTxId,
		AcceptedCountryCodes:  copyStrings(msg.AcceptedCountryCodes),
		AcceptedBankIds:       copyStrings(msg.AcceptedBankIds),
		VersionNr:             msg.VersionNr,
		BlockHeightAtCreation: msg.BlockHeightAtOfferCreation,
		TxFee:                 msg.TxFee,
		MakerFee:              msg.MakerFee,
		BuyerSecurityDeposit:  msg.BuyerSecurityDeposit,
		SellerSecurityDeposit: msg.SellerSecurityDeposit,
		MaxTradeLimit:         msg.MaxTradeLimit,
		MaxTradePeriod:        msg.MaxTradePeriod,
		UseAutoClose:          msg.UseAutoClose,
		UseReOpenAfterAutoClose: msg.UseReOpenAfterAutoClose,
		LowerClosePrice:       msg.LowerClosePrice,
		UpperClosePrice:       msg.UpperClosePrice,
		IsPrivateOffer:        msg.IsPrivateOffer,
		ExtraData:             copyExtraData(msg.ExtraData),
		ProtocolVersion:       msg.ProtocolVersion,
		ArbitratorSigner: NodeAddress{
			HostName: msg.ArbitratorSigner.HostName,
			Port:     msg.ArbitratorSigner.Port,
		},
		ReserveTxKeyImages: copyStrings(msg.ReserveTxKeyImages),
	}

	if msg.CountryCode != nil {
		offer.CountryCode = *msg.CountryCode
	}
	if msg.BankId != nil {
		offer.BankId = *msg.BankId
	}
	if msg.HashOfChallenge != nil {
		offer.HashOfChallenge = *msg.HashOfChallenge
	}
	if msg.ArbitratorSignature != nil {
		offer.ArbitratorSignature = *msg.ArbitratorSignature
	}

	return NewOffer(offer)
}

// Serialize encodes the offer for network storage. It fails with
// offerwire.ErrFeeTxIDNotSet when the fee payment tx id is not set yet.
func (o *Offer) Serialize() ([]byte, error) {
	return offerwire.Encode(o.WireMessage())
}

// DeserializeOffer decodes wire bytes received from the overlay into an offer
// record.
func DeserializeOffer(buf []byte) (*Offer, error) {
	msg, err := offerwire.Decode(buf)
	if err != nil {
		return nil, err
	}
	return OfferFromWireMessage(msg)
}

func copyStrings(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func copyExtraData(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var (
	_ StoragePayload        = (*Offer)(nil)
	_ ExpirablePayload      = (*Offer)(nil)
	_ RequiresOwnerIsOnline = (*Offer)(nil)
)
