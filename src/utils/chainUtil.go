package utils

import (
	"strconv"
	"strings"
)

const (
	BaseChainID    = 8453
	BaseChainIDHex = "0x2105"
)

type ChainIdMap map[int]string

var ChainIdToChain = ChainIdMap{
	1:        "ethereum",
	8453:     "base",
	11155111: "sepolia",
}

// ChainIDFromHex parses an EIP-1193 hex chain id ("0x2105") into its
// integer form. Returns 0 on malformed input.
func ChainIDFromHex(hexID string) int {
	s := strings.TrimPrefix(strings.ToLower(hexID), "0x")
	if s == "" {
		return 0
	}
	id, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0
	}
	return int(id)
}

// ChainIDToHex renders an integer chain id in the hex form wallet RPCs expect.
func ChainIDToHex(id int) string {
	return "0x" + strconv.FormatInt(int64(id), 16)
}
