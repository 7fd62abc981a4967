// Package offerwire implements the versioned binary wire format of the offer
// record exchanged through the storage overlay. Messages are encoded on the
// protobuf wire format with a fixed field order so that encoding the same
// logical content always yields the same bytes, a property the content hash
// and signature binding of the record depend on.
package offerwire

// Direction is the wire-level representation of an offer direction.
type Direction int32

const (
	DirectionBuy Direction = iota
	DirectionSell
)

var directionNames = map[Direction]string{
	DirectionBuy:  "BUY",
	DirectionSell: "SELL",
}

// Name returns the schema name of the direction, or an empty string if the
// value is out of the enum's domain.
func (d Direction) Name() string {
	return directionNames[d]
}

func (d Direction) isValid() bool {
	_, ok := directionNames[d]
	return ok
}

// NodeAddress is the wire form of a peer network address.
type NodeAddress struct {
	HostName string
	Port     uint32
}

// PubKeyRing is the wire form of the maker's public key material. The
// signature key binds ownership of the record, the encryption key is used for
// end-to-end encryption towards the record's recipient.
type PubKeyRing struct {
	SignaturePubKey  []byte
	EncryptionPubKey []byte
}

// OfferMessage is the single wire message of the offer record. Optional
// fields are modeled with pointers, nil slices and nil maps so that absence
// is distinguishable from present-but-empty and survives a round trip.
type OfferMessage struct {
	Id                         string      // 1
	Date                       int64       // 2, milliseconds since epoch
	OwnerNodeAddress           NodeAddress // 3
	PubKeyRing                 PubKeyRing  // 4
	Direction                  Direction   // 5
	Price                      uint64      // 6
	MarketPriceMargin          float64     // 7
	UseMarketBasedPrice        bool        // 8
	Amount                     uint64      // 9
	MinAmount                  uint64      // 10
	BaseCurrencyCode           string      // 11
	CounterCurrencyCode        string      // 12
	PaymentMethodId            string      // 13
	MakerPaymentAccountId      string      // 14
	OfferFeePaymentTxId        string      // 15
	CountryCode                *string     // 16
	AcceptedCountryCodes       []string    // 17
	BankId                     *string     // 18
	AcceptedBankIds            []string    // 19
	VersionNr                  string      // 20
	BlockHeightAtOfferCreation uint64      // 21
	TxFee                      uint64      // 22
	MakerFee                   uint64      // 23
	BuyerSecurityDeposit       uint64      // 24
	SellerSecurityDeposit      uint64      // 25
	MaxTradeLimit              uint64      // 26
	MaxTradePeriod             int64       // 27, milliseconds
	UseAutoClose               bool        // 28
	UseReOpenAfterAutoClose    bool        // 29
	LowerClosePrice            uint64      // 30
	UpperClosePrice            uint64      // 31
	IsPrivateOffer             bool        // 32
	HashOfChallenge            *string     // 33
	ExtraData                  map[string]string // 34
	ProtocolVersion            uint32      // 35
	ArbitratorSigner           NodeAddress // 36
	ArbitratorSignature        *string     // 37
	ReserveTxKeyImages         []string    // 38
}
