package domain

import "errors"

var (
	// ErrOfferInvalidId ...
	ErrOfferInvalidId = errors.New("offer id must not be empty")
	// ErrOfferInvalidDirection ...
	ErrOfferInvalidDirection = errors.New("offer direction is not valid")
	// ErrOfferAmountNotPositive ...
	ErrOfferAmountNotPositive = errors.New("offer amount must be positive")
	// ErrOfferMinAmountNotPositive ...
	ErrOfferMinAmountNotPositive = errors.New("offer min amount must be positive")
	// ErrOfferMinAmountTooHigh is thrown when the minimum tradable amount
	// exceeds the offer amount.
	ErrOfferMinAmountTooHigh = errors.New("offer min amount must not exceed amount")
	// ErrOfferAmbiguousPrice is thrown when both a fixed price and a market
	// price margin are set. Exactly one pricing mode is meaningful at a time.
	ErrOfferAmbiguousPrice = errors.New(
		"offer must use either a fixed price or a market price margin, not both",
	)
	// ErrOfferMissingChallengeHash is thrown when a private offer carries no
	// hash of the taker challenge.
	ErrOfferMissingChallengeHash = errors.New(
		"private offer must define the hash of its challenge",
	)
	// ErrOfferMissingAssetCodes ...
	ErrOfferMissingAssetCodes = errors.New(
		"offer base and counter asset codes must not be empty",
	)
	// ErrOfferMissingOwnerAddress ...
	ErrOfferMissingOwnerAddress = errors.New("offer owner address must not be empty")
	// ErrOfferMissingOwnerPubKey ...
	ErrOfferMissingOwnerPubKey = errors.New(
		"offer owner signature pub key must not be empty",
	)
	// ErrOfferFeeTxAlreadySet is thrown when trying to set the fee payment tx
	// id of an offer for the second time. The field transitions from absent to
	// present exactly once.
	ErrOfferFeeTxAlreadySet = errors.New("offer fee payment tx id is already set")
	// ErrOfferFeeTxEmpty ...
	ErrOfferFeeTxEmpty = errors.New("offer fee payment tx id must not be empty")
	// ErrInvalidNodeAddress ...
	ErrInvalidNodeAddress = errors.New("node address must be in host:port form")
	// ErrInvalidSignature is thrown when a signature does not verify against
	// the owner's signature pub key.
	ErrInvalidSignature = errors.New("signature does not match owner pub key")
)
