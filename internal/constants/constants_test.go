package constants_test

import (
	"testing"

	"github.com/ledgerstream/streams-go/internal/constants"
)

func TestSpongeGeometry(t *testing.T) {
	if constants.CapacityBits%8 != 0 {
		t.Errorf("CapacityBits must be byte-aligned, got %d", constants.CapacityBits)
	}
	if constants.RateSize+constants.CapacityBits/8 != constants.StateSize {
		t.Errorf("RateSize(%d) + capacity bytes(%d) != StateSize(%d)",
			constants.RateSize, constants.CapacityBits/8, constants.StateSize)
	}
	if constants.RateSize <= 0 {
		t.Errorf("RateSize must be positive, got %d", constants.RateSize)
	}
}

func TestKeySizeMatchesCapacity(t *testing.T) {
	if constants.KeySize != constants.CapacityBits/8 {
		t.Errorf("KeySize: got %d, want %d", constants.KeySize, constants.CapacityBits/8)
	}
	if constants.KeySize != 32 {
		t.Errorf("KeySize: got %d, want 32", constants.KeySize)
	}
}

func TestAddressGeometry(t *testing.T) {
	if constants.AppInstSize != 40 {
		t.Errorf("AppInstSize: got %d, want 40", constants.AppInstSize)
	}
	if constants.MsgIDSize != 12 {
		t.Errorf("MsgIDSize: got %d, want 12", constants.MsgIDSize)
	}
}

func TestDomainSeparatorsDistinct(t *testing.T) {
	separators := []string{
		constants.DomainSeparatorMsgID,
		constants.DomainSeparatorChannelKey,
		constants.DomainSeparatorPacketSig,
	}
	seen := make(map[string]bool)
	for _, sep := range separators {
		if sep == "" {
			t.Error("empty domain separator")
		}
		if seen[sep] {
			t.Errorf("duplicate domain separator: %q", sep)
		}
		seen[sep] = true
	}
}
