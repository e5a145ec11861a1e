package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClientType(t *testing.T) {
	for _, ct := range ClientTypes() {
		got, ok := ParseClientType(string(ct))
		assert.True(t, ok)
		assert.Equal(t, ct, got)
	}

	for _, bad := range []string{"", "kiosk", "TABLET", " KIOSK"} {
		_, ok := ParseClientType(bad)
		assert.False(t, ok, bad)
	}
}

func TestClientTypeList(t *testing.T) {
	assert.Equal(t, "KIOSK, BOGOFIT_APP, SHOPPING_MALL_WEB, BEAUTY_FIT", ClientTypeList())
}

func TestClientTypes_ReturnsCopy(t *testing.T) {
	list := ClientTypes()
	list[0] = "MUTATED"
	assert.Equal(t, ClientKiosk, ClientTypes()[0])
}

func TestParseResultKind(t *testing.T) {
	kind, ok := ParseResultKind("hair-fitting")
	assert.True(t, ok)
	assert.Equal(t, KindHairFitting, kind)

	_, ok = ParseResultKind("videos")
	assert.False(t, ok)
}

func TestParseRoleAndStatus(t *testing.T) {
	_, ok := ParseRole("ADMIN")
	assert.True(t, ok)
	_, ok = ParseRole("admin")
	assert.False(t, ok)

	_, ok = ParseVideoStatus("COMPLETED")
	assert.True(t, ok)
	_, ok = ParseVideoStatus("DONE")
	assert.False(t, ok)

	_, ok = ParseFeatureType("MAKEUP")
	assert.True(t, ok)
}

func TestIdentity_IsAdmin(t *testing.T) {
	assert.True(t, Identity{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: RoleUser}.IsAdmin())
	assert.False(t, Identity{}.IsAdmin())
}
