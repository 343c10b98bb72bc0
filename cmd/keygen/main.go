// keygen emits fresh key material: by default a 32-byte base64 vault
// encryption key (for ORDERLYBOT_VAULT_KEY), or with -orderly-key an
// ed25519 trading key pair for out-of-band provisioning.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"

	"github.com/starchild/orderlybot/orderly/signing"
)

func main() {
	orderlyKey := flag.Bool("orderly-key", false, "generate an ed25519 trading key pair instead of a vault key")
	flag.Parse()

	if *orderlyKey {
		kp, err := signing.GenerateKeyPair()
		if err != nil {
			log.Fatalf("generate key: %v", err)
		}
		fmt.Printf("orderly_key:         %s\n", kp.PublicKey)
		fmt.Printf("orderly_private_key: %s\n", kp.PrivateKeyHex())
		return
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("generate vault key: %v", err)
	}
	fmt.Printf("ORDERLYBOT_VAULT_KEY=%s\n", base64.StdEncoding.EncodeToString(key))
}
