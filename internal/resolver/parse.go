package resolver

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// IdentifierKind classifies user input for logging and validation.
type IdentifierKind int

const (
	KindSymbol IdentifierKind = iota
	KindEVMAddress
	KindSolanaAddress
)

func (k IdentifierKind) String() string {
	switch k {
	case KindEVMAddress:
		return "evm-address"
	case KindSolanaAddress:
		return "solana-address"
	default:
		return "symbol"
	}
}

// IsAddress reports whether k is one of the address kinds.
func (k IdentifierKind) IsAddress() bool {
	return k == KindEVMAddress || k == KindSolanaAddress
}

const solanaPubkeyLen = 32

// ClassifyIdentifier guesses whether input is an EVM address, a Solana
// address, or a symbol. It never rewrites the input.
func ClassifyIdentifier(input string) IdentifierKind {
	if common.IsHexAddress(input) && strings.HasPrefix(strings.ToLower(input), "0x") {
		return KindEVMAddress
	}
	if len(input) >= 32 && len(input) <= 44 {
		if data, err := base58.Decode(input); err == nil && len(data) == solanaPubkeyLen {
			return KindSolanaAddress
		}
	}
	return KindSymbol
}

// ParseAddress trims input and checks that it is an EVM or Solana address.
func ParseAddress(input string) (string, IdentifierKind, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", KindSymbol, fmt.Errorf("address is required")
	}
	kind := ClassifyIdentifier(input)
	if !kind.IsAddress() {
		return "", kind, fmt.Errorf("invalid address: %s", input)
	}
	return input, kind, nil
}
