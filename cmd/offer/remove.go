package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/urfave/cli/v2"
)

var remove = cli.Command{
	Name:      "remove",
	Usage:     "ask a storing node to evict one of your offer records",
	ArgsUsage: "<hash>",
	Flags: []cli.Flag{
		nodeFlag,
		&cli.StringFlag{
			Name:  "signature",
			Usage: "hex of the precomputed owner signature over the record hash",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "hex of the owner private key, used to sign the removal locally",
		},
	},
	Action: removeAction,
}

func removeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("missing record hash")
	}
	hash := ctx.Args().First()

	signature, err := removalSignature(ctx, hash)
	if err != nil {
		return err
	}

	if err := getClient(ctx).Remove(
		context.Background(), hash, signature,
	); err != nil {
		return err
	}

	fmt.Println("removed")

	return nil
}

func removalSignature(ctx *cli.Context, hash string) ([]byte, error) {
	if sigHex := ctx.String("signature"); sigHex != "" {
		signature, err := hex.DecodeString(sigHex)
		if err != nil {
			return nil, fmt.Errorf("signature must be a hex string: %s", err)
		}
		return signature, nil
	}

	keyHex := ctx.String("key")
	if keyHex == "" {
		return nil, fmt.Errorf("either a signature or a private key is required")
	}
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("key must be a hex string: %s", err)
	}
	privKey, _ := btcec.PrivKeyFromBytes(keyBytes)

	// The owner signature covers the raw content hash, which is the hex
	// decoded record hash.
	rawHash, err := hex.DecodeString(hash)
	if err != nil {
		return nil, fmt.Errorf("record hash must be a hex string: %s", err)
	}
	if len(rawHash) != sha256.Size {
		return nil, fmt.Errorf("record hash must be %d bytes", sha256.Size)
	}

	return ecdsa.Sign(privKey, rawHash).Serialize(), nil
}
